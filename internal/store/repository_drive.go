// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/models"
	"github.com/jackc/pgerrcode"
)

// driveRepository is the PostgreSQL-backed implementation of
// [DriveRepository]. It executes all drive and client-mount operations
// against the "drives" and "client_mounts" tables using the embedded [*DB]
// connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, client_id, unique_identifier).
type driveRepository struct {
	*DB
	logger *logger.Logger
}

// NewDriveRepository constructs a [DriveRepository] backed by the provided
// database connection and logger.
func NewDriveRepository(db *DB, logger *logger.Logger) DriveRepository {
	logger.Debug().Msg("creating drive repository")
	return &driveRepository{
		DB:     db,
		logger: logger,
	}
}

// Register looks up the drive by (user_id, unique_identifier) under a row
// lock, refreshes it or inserts it, and upserts the reporting client's
// mount — all inside one transaction. This is what lets a USB drive moved
// between laptops, or a cloud account mounted on three machines, resolve to
// a single Drive row.
//
// Two clients reporting an unknown identifier at the same time both miss
// the SELECT and race their INSERTs; the unique index rejects the loser,
// and the transaction is retried once so the loser lands on the upsert
// path instead. Retryable classifications (serialization failure,
// deadlock) get the same single retry.
func (r *driveRepository) Register(ctx context.Context, userID int64, clientID string, info models.DriveInfo) (models.Drive, error) {
	log := logger.FromContext(ctx)

	drive, err := r.registerTx(ctx, userID, clientID, info)
	if err != nil && r.retryable(err) {
		log.Warn().
			Str("func", "driveRepository.Register").
			Int64("user_id", userID).
			Str("unique_identifier", info.UniqueIdentifier).
			Msg("retrying drive registration after retryable database error")
		drive, err = r.registerTx(ctx, userID, clientID, info)
	}
	if err != nil {
		log.Err(err).
			Str("func", "driveRepository.Register").
			Int64("user_id", userID).
			Str("client_id", clientID).
			Str("unique_identifier", info.UniqueIdentifier).
			Msg("failed to register drive")
		return models.Drive{}, err
	}

	return drive, nil
}

func (r *driveRepository) registerTx(ctx context.Context, userID int64, clientID string, info models.DriveInfo) (models.Drive, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Drive{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var drive models.Drive

	row := tx.QueryRowContext(ctx, findDriveForUpdate, userID, info.UniqueIdentifier)
	scanErr := scanDrive(row, &drive)

	switch {
	case scanErr == nil:
		// Known volume: refresh the canonical row, keep its ID.
		row = tx.QueryRowContext(ctx, refreshDrive,
			drive.ID, info.DriveType, info.VolumeLabel, info.CloudProvider,
			info.TotalSpace, info.AvailableSpace)
		if err := scanDrive(row, &drive); err != nil {
			return models.Drive{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

	case errors.Is(scanErr, sql.ErrNoRows):
		row = tx.QueryRowContext(ctx, insertDrive,
			userID, info.UniqueIdentifier, info.DriveType, info.VolumeLabel,
			info.CloudProvider, info.TotalSpace, info.AvailableSpace)
		if err := scanDrive(row, &drive); err != nil {
			// A concurrent insert for the same identifier surfaces here
			// as a unique violation; the caller retries once.
			return models.Drive{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

	default:
		return models.Drive{}, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	if _, err := tx.ExecContext(ctx, upsertClientMount,
		drive.ID, clientID, string(info.MountPoint), info.IsAvailable); err != nil {
		return models.Drive{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Drive{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	mounts, err := r.mountsForDrives(ctx, []int64{drive.ID})
	if err != nil {
		return models.Drive{}, err
	}
	drive.Mounts = mounts[drive.ID]

	return drive, nil
}

// SetAvailability updates one client's mount availability for the drive
// identified by its cross-client identifier.
//
// Unknown identifiers and unknown mounts return (false, nil): clients
// report asynchronously and out of order, and a stale report about an
// already-removed drive must not crash the caller.
func (r *driveRepository) SetAvailability(ctx context.Context, userID int64, clientID, uniqueIdentifier string, available bool) (bool, error) {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, setMountAvailability, userID, uniqueIdentifier, clientID, available)
	if err != nil {
		log.Err(err).
			Str("func", "driveRepository.SetAvailability").
			Int64("user_id", userID).
			Str("unique_identifier", uniqueIdentifier).
			Msg("failed to update mount availability")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

// Resolve finds the canonical drive for a cross-client identifier, mounts
// included. A missing drive is (nil, nil), never an error.
func (r *driveRepository) Resolve(ctx context.Context, userID int64, uniqueIdentifier string) (*models.Drive, error) {
	log := logger.FromContext(ctx)

	var drive models.Drive
	row := r.DB.QueryRowContext(ctx, findDriveByIdentifier, userID, uniqueIdentifier)
	if err := scanDrive(row, &drive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Err(err).
			Str("func", "driveRepository.Resolve").
			Int64("user_id", userID).
			Str("unique_identifier", uniqueIdentifier).
			Msg("failed to resolve drive")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	mounts, err := r.mountsForDrives(ctx, []int64{drive.ID})
	if err != nil {
		return nil, err
	}
	drive.Mounts = mounts[drive.ID]

	return &drive, nil
}

// AvailableMountsForClient returns the mounts currently reported available
// on one specific client. The caller performs longest-prefix matching; the
// repository only guarantees client scoping.
func (r *driveRepository) AvailableMountsForClient(ctx context.Context, userID int64, clientID string) ([]models.ClientMount, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listAvailableMountsForClient, userID, clientID)
	if err != nil {
		log.Err(err).
			Str("func", "driveRepository.AvailableMountsForClient").
			Int64("user_id", userID).
			Str("client_id", clientID).
			Msg("failed to query available mounts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanMounts(rows)
}

// ListForUser returns every drive of the user with its mounts attached.
func (r *driveRepository) ListForUser(ctx context.Context, userID int64) ([]models.Drive, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listDrivesForUser, userID)
	if err != nil {
		log.Err(err).
			Str("func", "driveRepository.ListForUser").
			Int64("user_id", userID).
			Msg("failed to query drives")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	drives := make([]models.Drive, 0, 8)
	ids := make([]int64, 0, 8)
	for rows.Next() {
		var drive models.Drive
		if err := scanDrive(rows, &drive); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		drives = append(drives, drive)
		ids = append(ids, drive.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if len(ids) == 0 {
		return drives, nil
	}

	mounts, err := r.mountsForDrives(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range drives {
		drives[i].Mounts = mounts[drives[i].ID]
	}

	return drives, nil
}

func (r *driveRepository) mountsForDrives(ctx context.Context, driveIDs []int64) (map[int64][]models.ClientMount, error) {
	rows, err := r.DB.QueryContext(ctx, listMountsForDrives, driveIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	mounts, err := scanMounts(rows)
	if err != nil {
		return nil, err
	}

	byDrive := make(map[int64][]models.ClientMount, len(driveIDs))
	for _, m := range mounts {
		byDrive[m.DriveID] = append(byDrive[m.DriveID], m)
	}

	return byDrive, nil
}

// retryable reports whether a failed transaction deserves one more
// attempt. On top of the classifier's transient conditions, a unique
// violation is retried too: it means another transaction inserted the same
// row first, and the rerun will take the update path instead.
func (r *driveRepository) retryable(err error) bool {
	return r.errorClassificator.Classify(err) == Retryable ||
		postgresError(err) == pgerrcode.UniqueViolation
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDrive(row rowScanner, drive *models.Drive) error {
	return row.Scan(
		&drive.ID,
		&drive.UserID,
		&drive.UniqueIdentifier,
		&drive.DriveType,
		&drive.VolumeLabel,
		&drive.CloudProvider,
		&drive.TotalSpace,
		&drive.AvailableSpace,
		&drive.LastSeenAt,
	)
}

func scanMounts(rows *sql.Rows) ([]models.ClientMount, error) {
	mounts := make([]models.ClientMount, 0, 8)
	for rows.Next() {
		var m models.ClientMount
		if err := rows.Scan(&m.DriveID, &m.ClientID, &m.MountPoint, &m.IsAvailable, &m.LastSeenAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		mounts = append(mounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return mounts, nil
}
