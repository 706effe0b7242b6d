// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package service

import (
	"context"
	"fmt"

	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/internal/store"
	"github.com/MikVR7/Homie-sub000/models"
)

// driveService is the concrete implementation of [DriveService] on top of
// the drive repository.
type driveService struct {
	drives store.DriveRepository
	logger *logger.Logger
}

// NewDriveService constructs a [DriveService].
func NewDriveService(drives store.DriveRepository, logger *logger.Logger) DriveService {
	return &driveService{
		drives: drives,
		logger: logger,
	}
}

// RegisterDrives implements [DriveService].
//
// Each reported drive is validated and registered independently; the
// response carries one outcome per input, in input order. An invalid or
// failed entry gets its error recorded in its own outcome while the rest
// of the batch proceeds.
func (s *driveService) RegisterDrives(ctx context.Context, userID int64, req models.RegisterDrivesRequest) (models.RegisterDrivesResponse, error) {
	log := logger.FromContext(ctx)

	if req.ClientID == "" {
		log.Error().Int64("user_id", userID).Msg("drive registration without client id")
		return models.RegisterDrivesResponse{}, ErrValidationEmptyClientID
	}

	outcomes := make([]models.DriveOutcome, 0, len(req.Drives))
	for _, info := range req.Drives {
		outcome := models.DriveOutcome{UniqueIdentifier: info.UniqueIdentifier}

		if err := validateDriveInfo(info); err != nil {
			outcome.Error = err.Error()
			outcomes = append(outcomes, outcome)
			continue
		}

		drive, err := s.drives.Register(ctx, userID, req.ClientID, info)
		if err != nil {
			log.Err(err).
				Int64("user_id", userID).
				Str("unique_identifier", info.UniqueIdentifier).
				Msg("drive registration failed")
			outcome.Error = err.Error()
			outcomes = append(outcomes, outcome)
			continue
		}

		outcome.Drive = &drive
		outcomes = append(outcomes, outcome)
	}

	return models.RegisterDrivesResponse{Outcomes: outcomes}, nil
}

// SetAvailability implements [DriveService].
func (s *driveService) SetAvailability(ctx context.Context, userID int64, req models.AvailabilityRequest) (models.AvailabilityResponse, error) {
	if req.ClientID == "" {
		return models.AvailabilityResponse{}, ErrValidationEmptyClientID
	}
	if req.UniqueIdentifier == "" {
		return models.AvailabilityResponse{}, ErrValidationEmptyIdentifier
	}

	updated, err := s.drives.SetAvailability(ctx, userID, req.ClientID, req.UniqueIdentifier, req.IsAvailable)
	if err != nil {
		return models.AvailabilityResponse{}, fmt.Errorf("availability update failed: %w", err)
	}

	return models.AvailabilityResponse{Updated: updated}, nil
}

// ListDrives implements [DriveService].
func (s *driveService) ListDrives(ctx context.Context, userID int64) ([]models.Drive, error) {
	drives, err := s.drives.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing drives failed: %w", err)
	}

	return drives, nil
}

// DriveForPath implements [DriveService].
//
// The path is matched against the client's available mount points; the
// longest matching mount wins, so nested mounts (a USB drive mounted under
// a fixed drive's tree) resolve to the innermost volume. A path equal to
// the mount point itself counts as a match.
func (s *driveService) DriveForPath(ctx context.Context, userID int64, clientID string, path models.ClientPath) (*models.Drive, error) {
	mounts, err := s.drives.AvailableMountsForClient(ctx, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("loading client mounts failed: %w", err)
	}

	var best *models.ClientMount
	for i := range mounts {
		m := &mounts[i]
		if !path.HasPrefix(m.MountPoint) {
			continue
		}
		if best == nil || len(m.MountPoint) > len(best.MountPoint) {
			best = m
		}
	}
	if best == nil {
		return nil, nil
	}

	drives, err := s.drives.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading drives failed: %w", err)
	}
	for i := range drives {
		if drives[i].ID == best.DriveID {
			return &drives[i], nil
		}
	}

	return nil, nil
}

func validateDriveInfo(info models.DriveInfo) error {
	if info.UniqueIdentifier == "" {
		return ErrValidationEmptyIdentifier
	}
	if !info.DriveType.Valid() {
		return fmt.Errorf("%w: %q", ErrValidationInvalidDriveType, info.DriveType)
	}
	return nil
}
