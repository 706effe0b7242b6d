// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package models

import "strings"

// Path is a normalized, server-side destination path: absolute, redundant
// separators collapsed, trailing separator stripped (except for the root).
//
// Path and ClientPath are deliberately distinct types. A ClientPath is only
// meaningful together with the client_id that reported it, so the compiler
// rejects accidental cross-client comparisons that would silently produce
// wrong answers (the same string names different volumes on different
// machines).
type Path string

// ClientPath is a client-local absolute path. It must never be compared
// against paths from another client; only a drive's unique identifier is
// comparable across clients.
type ClientPath string

// NormalizePath collapses redundant separators and strips trailing ones,
// producing the canonical form under which destinations are stored and
// matched. Backslashes are treated as separators so Windows clients and
// POSIX clients agree on the canonical form.
func NormalizePath(raw string) Path {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "\\", "/")

	// Collapse runs of separators.
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}

	if len(s) > 1 {
		s = strings.TrimRight(s, "/")
	}

	return Path(s)
}

// IsAbs reports whether the normalized path is absolute. Both POSIX roots
// and Windows drive letters ("C:/...") are accepted.
func (p Path) IsAbs() bool {
	s := string(p)
	if strings.HasPrefix(s, "/") {
		return true
	}
	return len(s) >= 3 && s[1] == ':' && s[2] == '/'
}

// IsAncestorOf reports whether p is a strict path-prefix ancestor of other,
// i.e. other begins with p followed by a separator. Equal paths are not
// ancestors of each other.
func (p Path) IsAncestorOf(other Path) bool {
	if p == "" || p == other {
		return false
	}
	return strings.HasPrefix(string(other), string(p)+"/")
}

// HasPrefix reports whether the client-local path lies at or below the
// given client-local mount point. Both values must come from the same
// client; the type system cannot check that, the caller's scoping must.
func (p ClientPath) HasPrefix(mountPoint ClientPath) bool {
	if mountPoint == "" {
		return false
	}
	if p == mountPoint {
		return true
	}
	mp := strings.TrimRight(string(mountPoint), "/")
	if mp == "" {
		mp = "/"
		return strings.HasPrefix(string(p), mp)
	}
	return strings.HasPrefix(string(p), mp+"/")
}
