package store

import (
	"context"

	"github.com/MikVR7/Homie-sub000/models"
)

// DriveRepository canonicalizes storage volumes across clients. One Drive
// row exists per (user, unique_identifier); per-client locations are kept
// in the owned client_mounts set.
type DriveRepository interface {
	// Register upserts a drive report from one client. An existing drive
	// (matched by unique identifier) keeps its server-assigned ID and
	// gains or refreshes the reporting client's mount row; an unknown
	// identifier creates the drive with its first mount. The
	// lookup-or-insert runs as one atomic transaction per
	// (user, unique_identifier).
	Register(ctx context.Context, userID int64, clientID string, info models.DriveInfo) (models.Drive, error)

	// SetAvailability flips one client's mount availability. Returns
	// false without error when the drive or mount is unknown — stale
	// reports from out-of-sync clients must not fail.
	SetAvailability(ctx context.Context, userID int64, clientID, uniqueIdentifier string, available bool) (bool, error)

	// Resolve finds a drive by its cross-client identifier, mounts
	// included. Returns (nil, nil) when unknown.
	Resolve(ctx context.Context, userID int64, uniqueIdentifier string) (*models.Drive, error)

	// AvailableMountsForClient returns the available mounts visible from
	// one specific client, for longest-prefix path resolution.
	AvailableMountsForClient(ctx context.Context, userID int64, clientID string) ([]models.ClientMount, error)

	// ListForUser returns all drives of the user with their mounts.
	ListForUser(ctx context.Context, userID int64) ([]models.Drive, error)
}

// AddDestinationParams carries the pre-validated, pre-normalized inputs of
// one destination add.
type AddDestinationParams struct {
	UserID int64

	// Path must already be normalized by the caller.
	Path models.Path

	Category string

	// Color is the caller-supplied canonical color, or empty to let the
	// store allocate the next palette color inside the add transaction.
	Color string

	// DriveID is the drive resolved for the reporting client, nil when
	// the path lies on no tracked drive.
	DriveID *int64
}

// RemoveResult reports the outcome of a destination removal.
type RemoveResult struct {
	// Removed is false when the destination did not exist or was already
	// inactive — a no-op, not an error.
	Removed bool

	// Cascaded counts descendant destinations retired alongside the
	// target.
	Cascaded int64
}

// DestinationRepository owns the learned-destination memory: soft delete,
// reactivation, cascading removal, and in-transaction color allocation.
type DestinationRepository interface {
	// Add creates, reactivates, or idempotently bumps the destination for
	// (user, normalized path), in one atomic transaction.
	Add(ctx context.Context, params AddDestinationParams) (models.Destination, error)

	// Remove soft-deletes the destination and every active descendant
	// (path prefix match) in the same transaction.
	Remove(ctx context.Context, userID, destinationID int64) (RemoveResult, error)

	// ListForClient returns active destinations reachable from the given
	// client: untracked, on a cloud drive, or on a drive with an
	// available mount for that client. Ordered by usage_count DESC,
	// last_used_at DESC.
	ListForClient(ctx context.Context, userID int64, clientID string) ([]models.DestinationView, error)

	// ListByCategory returns the user's active destinations with the
	// given category, most used first.
	ListByCategory(ctx context.Context, userID int64, category string) ([]models.Destination, error)
}
