// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/internal/palette"
	"github.com/MikVR7/Homie-sub000/models"
	"github.com/jackc/pgerrcode"
)

// destinationRepository is the PostgreSQL-backed implementation of
// [DestinationRepository]. All writes that must observe a consistent view
// of the user's destinations (add/reactivate + color allocation, remove +
// cascade) run inside a single transaction.
type destinationRepository struct {
	*DB
	logger *logger.Logger
}

// NewDestinationRepository constructs a [DestinationRepository] backed by
// the provided database connection and logger.
func NewDestinationRepository(db *DB, logger *logger.Logger) DestinationRepository {
	logger.Debug().Msg("creating destination repository")
	return &destinationRepository{
		DB:     db,
		logger: logger,
	}
}

// Add performs the lookup-or-insert/reactivate for (user_id, path) as one
// atomic transaction. Three outcomes:
//
//   - no row: allocate a color (unless supplied) from the colors active in
//     this transaction's snapshot and insert a fresh active row;
//   - inactive row: flip it back to active and refresh last_used_at — the
//     original color, ID, and usage history survive removal;
//   - active row: idempotent success, bump usage_count.
//
// Color allocation reads existing colors ordered by (created_at,
// destination_id), so replaying a creation history reproduces the same
// color sequence on any client. A concurrent add of the same new path
// loses the insert race on the partial unique index and is retried once,
// landing on the bump path.
func (r *destinationRepository) Add(ctx context.Context, params AddDestinationParams) (models.Destination, error) {
	log := logger.FromContext(ctx)

	dest, err := r.addTx(ctx, params)
	if err != nil && r.retryable(err) {
		log.Warn().
			Str("func", "destinationRepository.Add").
			Int64("user_id", params.UserID).
			Str("path", string(params.Path)).
			Msg("retrying destination add after retryable database error")
		dest, err = r.addTx(ctx, params)
	}
	if err != nil {
		log.Err(err).
			Str("func", "destinationRepository.Add").
			Int64("user_id", params.UserID).
			Str("path", string(params.Path)).
			Msg("failed to add destination")
		return models.Destination{}, err
	}

	return dest, nil
}

func (r *destinationRepository) addTx(ctx context.Context, params AddDestinationParams) (models.Destination, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Destination{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var existing models.Destination
	row := tx.QueryRowContext(ctx, findDestinationForUpdate, params.UserID, string(params.Path))
	scanErr := scanDestination(row, &existing)

	var dest models.Destination

	switch {
	case scanErr == nil && existing.IsActive:
		// Idempotent re-add of an active destination.
		row = tx.QueryRowContext(ctx, bumpDestinationUsage, existing.ID)
		if err := scanDestination(row, &dest); err != nil {
			return models.Destination{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

	case scanErr == nil:
		// Reactivation: restore the retired row in place. The original
		// color is deliberately kept — re-adding a removed destination
		// must never allocate a new one.
		category := params.Category
		if category == "" {
			category = existing.Category
		}
		row = tx.QueryRowContext(ctx, reactivateDestination, existing.ID, category)
		if err := scanDestination(row, &dest); err != nil {
			return models.Destination{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

	case errors.Is(scanErr, sql.ErrNoRows):
		color := params.Color
		if color == "" {
			colors, err := r.activeColors(ctx, tx, params.UserID)
			if err != nil {
				return models.Destination{}, err
			}
			color = palette.Allocate(colors)
		}

		row = tx.QueryRowContext(ctx, insertDestination,
			params.UserID, string(params.Path), params.Category, color, params.DriveID)
		if err := scanDestination(row, &dest); err != nil {
			return models.Destination{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

	default:
		return models.Destination{}, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	if err := tx.Commit(); err != nil {
		return models.Destination{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return dest, nil
}

// retryable mirrors driveRepository: transient conditions plus the unique
// violation raised when a concurrent transaction created the same
// (user_id, path) first.
func (r *destinationRepository) retryable(err error) bool {
	return r.errorClassificator.Classify(err) == Retryable ||
		postgresError(err) == pgerrcode.UniqueViolation
}

func (r *destinationRepository) activeColors(ctx context.Context, tx *sql.Tx, userID int64) ([]string, error) {
	rows, err := tx.QueryContext(ctx, listActiveColors, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	colors := make([]string, 0, palette.Size)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		colors = append(colors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return colors, nil
}

// Remove soft-deletes the destination and, in the same transaction, every
// other active destination of the user whose path starts with the target
// path plus a separator. The cascade is a single prefix-match UPDATE, not
// a tree walk: ancestry is derived from path strings, not stored pointers.
//
// A missing or already-inactive destination is reported as Removed=false,
// never as an error.
func (r *destinationRepository) Remove(ctx context.Context, userID, destinationID int64) (RemoveResult, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return RemoveResult{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var path string
	row := tx.QueryRowContext(ctx, deactivateDestination, destinationID, userID)
	if err := row.Scan(&path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RemoveResult{Removed: false}, nil
		}
		log.Err(err).
			Str("func", "destinationRepository.Remove").
			Int64("user_id", userID).
			Int64("destination_id", destinationID).
			Msg("failed to deactivate destination")
		return RemoveResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	res, err := tx.ExecContext(ctx, deactivateDescendants, userID, path)
	if err != nil {
		log.Err(err).
			Str("func", "destinationRepository.Remove").
			Int64("user_id", userID).
			Str("path", path).
			Msg("failed to cascade deactivation to descendants")
		return RemoveResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	cascaded, err := res.RowsAffected()
	if err != nil {
		return RemoveResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		return RemoveResult{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return RemoveResult{Removed: true, Cascaded: cascaded}, nil
}

// destinationViewColumns are the columns selected by the client-scoped
// listing: the full destination row plus the joined drive type and the
// computed reachability flag.
var destinationViewColumns = []string{
	"dst.destination_id", "dst.user_id", "dst.path", "dst.category", "dst.color",
	"dst.drive_id", "dst.usage_count", "dst.last_used_at", "dst.created_at", "dst.is_active",
	"COALESCE(d.drive_type, '')",
}

// ListForClient returns the active destinations usable from one client:
// untracked (no drive), on a cloud drive (reachable from every client by
// convention), or on a drive with an available mount reported by that
// specific client. Most used, most recent first — this list seeds both
// suggestion context and UI ordering.
func (r *destinationRepository) ListForClient(ctx context.Context, userID int64, clientID string) ([]models.DestinationView, error) {
	log := logger.FromContext(ctx)

	reachable := sq.Or{
		sq.Expr("dst.drive_id IS NULL"),
		sq.Expr("d.drive_type = ?", string(models.DriveTypeCloud)),
		sq.Expr(`EXISTS (
			SELECT 1 FROM client_mounts cm
			WHERE cm.drive_id = dst.drive_id AND cm.client_id = ? AND cm.is_available
		)`, clientID),
	}

	query, args, err := sq.Select(destinationViewColumns...).
		From("destinations dst").
		LeftJoin("drives d ON d.drive_id = dst.drive_id").
		Where(sq.Eq{"dst.user_id": userID, "dst.is_active": true}).
		Where(reachable).
		OrderBy("dst.usage_count DESC", "dst.last_used_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "destinationRepository.ListForClient").
			Int64("user_id", userID).
			Str("client_id", clientID).
			Msg("failed to query destinations for client")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	views := make([]models.DestinationView, 0, 16)
	for rows.Next() {
		var v models.DestinationView
		if err := rows.Scan(
			&v.ID, &v.UserID, &v.Path, &v.Category, &v.Color,
			&v.DriveID, &v.UsageCount, &v.LastUsedAt, &v.CreatedAt, &v.IsActive,
			&v.DriveType,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		v.Reachable = true // the WHERE clause only admits reachable rows
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return views, nil
}

// ListByCategory returns the user's active destinations carrying the given
// category label, most used first.
func (r *destinationRepository) ListByCategory(ctx context.Context, userID int64, category string) ([]models.Destination, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(
		"destination_id", "user_id", "path", "category", "color",
		"drive_id", "usage_count", "last_used_at", "created_at", "is_active").
		From("destinations").
		Where(sq.Eq{"user_id": userID, "category": category, "is_active": true}).
		OrderBy("usage_count DESC", "last_used_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "destinationRepository.ListByCategory").
			Int64("user_id", userID).
			Str("category", category).
			Msg("failed to query destinations by category")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	dests := make([]models.Destination, 0, 16)
	for rows.Next() {
		var d models.Destination
		if err := scanDestination(rows, &d); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return dests, nil
}

func scanDestination(row rowScanner, dest *models.Destination) error {
	return row.Scan(
		&dest.ID,
		&dest.UserID,
		&dest.Path,
		&dest.Category,
		&dest.Color,
		&dest.DriveID,
		&dest.UsageCount,
		&dest.LastUsedAt,
		&dest.CreatedAt,
		&dest.IsActive,
	)
}
