// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package models

// RegisterDrivesRequest reports a batch of locally detected drives from one
// client. The client_id is caller-generated, stable across sessions for the
// same physical device; the server never infers or assigns it.
type RegisterDrivesRequest struct {
	ClientID string      `json:"client_id"`
	Drives   []DriveInfo `json:"drives"`
}

// DriveOutcome is the per-drive result of a batch registration. Failures
// are isolated: one malformed report never aborts the rest of the batch.
type DriveOutcome struct {
	UniqueIdentifier string `json:"unique_identifier"`
	Drive            *Drive `json:"drive,omitempty"`
	Error            string `json:"error,omitempty"`
}

// RegisterDrivesResponse carries one outcome per reported drive, in input
// order.
type RegisterDrivesResponse struct {
	Outcomes []DriveOutcome `json:"outcomes"`
}

// AvailabilityRequest updates the reachability of one drive on one client.
type AvailabilityRequest struct {
	ClientID         string `json:"client_id"`
	UniqueIdentifier string `json:"unique_identifier"`
	IsAvailable      bool   `json:"is_available"`
}

// AvailabilityResponse reports whether a mount row was actually updated.
// Updated=false means the drive or mount is unknown — a stale report, not
// an error.
type AvailabilityResponse struct {
	Updated bool `json:"updated"`
}

// AddDestinationRequest creates or reactivates a learned destination.
// Color is optional; when empty the server assigns the next free palette
// color deterministically.
type AddDestinationRequest struct {
	ClientID string `json:"client_id"`
	Path     string `json:"path"`
	Category string `json:"category"`
	Color    string `json:"color,omitempty"`
}

// RemoveDestinationResponse reports whether the target row was deactivated
// and how many descendant destinations were retired by the cascade.
type RemoveDestinationResponse struct {
	Removed  bool  `json:"removed"`
	Cascaded int64 `json:"cascaded"`
}

// OrganizeRequest asks the server to plan and execute the organization of
// the given files, as seen from the reporting client.
type OrganizeRequest struct {
	ClientID string       `json:"client_id"`
	Files    []ClientPath `json:"files"`
}

// ExecutePlansRequest submits suggestion-produced plans for execution
// without another planning round trip.
type ExecutePlansRequest struct {
	ClientID string          `json:"client_id"`
	Plans    []OperationPlan `json:"plans"`
}

// OrganizeResponse returns one execution result per input file. A failure
// in one file's plan never affects the others.
type OrganizeResponse struct {
	Results []ExecutionResult `json:"results"`
}
