// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package service

import (
	"context"

	"github.com/MikVR7/Homie-sub000/models"
)

// DriveService canonicalizes client drive reports and answers path-to-drive
// questions for one specific client.
type DriveService interface {
	// RegisterDrives processes a batch report of locally detected drives.
	// One outcome per input, in input order; a malformed report fails its
	// own outcome and never aborts the rest of the batch.
	RegisterDrives(ctx context.Context, userID int64, req models.RegisterDrivesRequest) (models.RegisterDrivesResponse, error)

	// SetAvailability flips one client's mount availability. A stale
	// report about an unknown drive yields Updated=false, not an error.
	SetAvailability(ctx context.Context, userID int64, req models.AvailabilityRequest) (models.AvailabilityResponse, error)

	// ListDrives returns all drives of the user with their mounts.
	ListDrives(ctx context.Context, userID int64) ([]models.Drive, error)

	// DriveForPath resolves which drive a client-local path lives on by
	// longest-prefix match over the client's available mounts. Nil when
	// no mount covers the path.
	DriveForPath(ctx context.Context, userID int64, clientID string, path models.ClientPath) (*models.Drive, error)
}

// DestinationService owns the learned-destination memory exposed to
// clients, plus the auto-capture entry point used by the plan executor.
type DestinationService interface {
	// Add validates and normalizes the path, resolves the backing drive
	// for the reporting client, and creates, reactivates, or bumps the
	// destination.
	Add(ctx context.Context, userID int64, req models.AddDestinationRequest) (models.Destination, error)

	// Remove soft-deletes the destination and cascades to its active
	// descendants.
	Remove(ctx context.Context, userID, destinationID int64) (models.RemoveDestinationResponse, error)

	// ListForClient returns the active destinations reachable from one
	// client, most used first.
	ListForClient(ctx context.Context, userID int64, clientID string) ([]models.DestinationView, error)

	// ListByCategory returns the user's active destinations with the
	// given category.
	ListByCategory(ctx context.Context, userID int64, category string) ([]models.Destination, error)

	// RecordDestination is the auto-capture feedback from the plan
	// executor: the directory a file ended up in after a successful move
	// or unpack. User and client identity come from the request context.
	RecordDestination(ctx context.Context, dir models.ClientPath, category string) error
}

// OrganizeService turns unorganized files into executed operation plans.
type OrganizeService interface {
	// Organize builds the reachability context for the client, requests
	// plans from the suggestion service, executes them, and returns one
	// result per input file.
	Organize(ctx context.Context, userID int64, req models.OrganizeRequest) (models.OrganizeResponse, error)

	// ExecutePlans runs caller-supplied plans (typically produced by a
	// previous Organize round trip reviewed by the user) without another
	// suggestion call.
	ExecutePlans(ctx context.Context, userID int64, req models.ExecutePlansRequest) (models.OrganizeResponse, error)
}

// AuthService verifies bearer tokens issued by the external auth system.
// Token issuing is deliberately absent: this service only consumes
// identity, it never creates it.
type AuthService interface {
	// ParseToken validates the signature and issuer of a raw JWT string
	// and returns the decoded token.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
