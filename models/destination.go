// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package models

import "time"

// Destination is a learned, user-specific (path, category) pairing with
// usage statistics and a stable display color.
//
// Destinations are soft-deleted: removing one flips IsActive to false and
// keeps the row, so re-adding the same normalized path later reactivates
// the original record (same ID, same color, same usage history) instead of
// creating a duplicate. For a given (UserID, Path) at most one row may be
// active at a time.
type Destination struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`

	// Path is the normalized absolute path of the destination directory.
	Path Path `json:"path"`

	// Category is the free-form label the user (or the suggestion layer)
	// attached to this destination, e.g. "Movies" or "Invoices".
	Category string `json:"category"`

	// Color is the 6-hex-digit lowercase display color, or empty when no
	// color has been assigned.
	Color string `json:"color"`

	// DriveID links the destination to the resolved drive it lives on.
	// Nil means no drive is tracked and the destination is treated as
	// always reachable.
	DriveID *int64 `json:"drive_id,omitempty"`

	UsageCount int64     `json:"usage_count"`
	LastUsedAt time.Time `json:"last_used_at"`
	CreatedAt  time.Time `json:"created_at"`

	// IsActive is the soft-delete flag.
	IsActive bool `json:"is_active"`
}

// DestinationView is a Destination enriched with reachability data for one
// specific client, as returned by the client-scoped listing. It feeds both
// UI ordering and the suggestion context.
type DestinationView struct {
	Destination

	// DriveType is the type of the linked drive, empty when DriveID is nil.
	DriveType DriveType `json:"drive_type,omitempty"`

	// Reachable reports whether the destination is usable from the
	// requesting client: untracked, on a cloud drive, or on a drive with
	// an available mount for that client.
	Reachable bool `json:"reachable"`
}
