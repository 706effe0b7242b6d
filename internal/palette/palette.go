// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

// Package palette assigns display colors to destinations from a fixed,
// process-wide palette.
//
// Allocation is a pure function of the caller's existing color set, so any
// client or process replaying the same creation history arrives at the same
// color sequence. Two racing allocators only need a serializable view of
// "existing colors" (provided by the surrounding store transaction), never
// coordination between themselves.
package palette

import (
	"regexp"
	"strings"
)

// Colors is the fixed ordered palette. Its order is part of the allocation
// contract: changing it changes which color every future destination gets.
var Colors = [...]string{
	"e6194b", "3cb44b", "ffe119", "4363d8", "f58231",
	"911eb4", "46f0f0", "f032e6", "bcf60c", "fabebe",
	"008080", "e6beff", "9a6324", "fffac8", "800000",
	"aaffc3", "808000", "ffd8b1", "000075", "808080",
}

// Size is the number of colors in the palette.
const Size = len(Colors)

var hexColor = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// Normalize canonicalizes a color value to 6 lowercase hex digits without a
// leading '#'. The second return value is false when the input is not a
// 6-hex-digit color.
func Normalize(color string) (string, bool) {
	c := strings.TrimSpace(color)
	if !hexColor.MatchString(c) {
		return "", false
	}
	return strings.ToLower(strings.TrimPrefix(c, "#")), true
}

// Allocate returns the color for the next destination given the colors
// already in use by the same user.
//
// The first palette color not present in existing (compared in canonical
// form) wins. Once every palette color is taken, allocation cycles
// sequentially: destination number Size+1 gets Colors[0] again, Size+2 gets
// Colors[1], and so on — palette[len(existing) mod Size]. Unparseable
// entries in existing are ignored rather than rejected; they cannot collide
// with palette colors anyway.
func Allocate(existing []string) string {
	used := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		if n, ok := Normalize(c); ok {
			used[n] = struct{}{}
		}
	}

	for _, c := range Colors {
		if _, taken := used[c]; !taken {
			return c
		}
	}

	return Colors[len(existing)%Size]
}
