// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package models

// SuggestionContext is the opaque input blob handed to the external
// suggestion service. It describes what the requesting client can reach so
// the suggestion layer proposes plans against real, usable destinations.
// This core never interprets suggestion responses beyond decoding them into
// operation plans.
type SuggestionContext struct {
	ClientID string `json:"client_id"`

	// Categories groups known destinations by category label, most-used
	// first within each group.
	Categories []CategoryContext `json:"categories"`

	// Drives lists the user's known drives with their per-client mounts.
	Drives []Drive `json:"drives"`
}

// CategoryContext is one category group inside a suggestion context.
type CategoryContext struct {
	Category     string            `json:"category"`
	Destinations []DestinationView `json:"destinations"`
}

// SuggestionRequest is the wire request to the suggestion service: the
// context plus the files awaiting organization.
type SuggestionRequest struct {
	Context SuggestionContext `json:"context"`
	Files   []ClientPath      `json:"files"`
}

// SuggestionResponse is the wire response: one proposed plan per file.
type SuggestionResponse struct {
	Plans []OperationPlan `json:"plans"`
}
