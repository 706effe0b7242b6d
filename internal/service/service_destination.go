// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package service

import (
	"context"
	"fmt"

	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/internal/palette"
	"github.com/MikVR7/Homie-sub000/internal/store"
	"github.com/MikVR7/Homie-sub000/internal/utils"
	"github.com/MikVR7/Homie-sub000/models"
)

// destinationService is the concrete implementation of
// [DestinationService]. It validates and normalizes at the boundary, then
// delegates the transactional work to the destination repository.
type destinationService struct {
	destinations store.DestinationRepository
	driveService DriveService
	logger       *logger.Logger
}

// NewDestinationService constructs a [DestinationService]. The drive
// service is used to resolve which drive a new destination lives on, as
// seen from the reporting client.
func NewDestinationService(destinations store.DestinationRepository, driveService DriveService, logger *logger.Logger) DestinationService {
	return &destinationService{
		destinations: destinations,
		driveService: driveService,
		logger:       logger,
	}
}

// Add implements [DestinationService].
func (s *destinationService) Add(ctx context.Context, userID int64, req models.AddDestinationRequest) (models.Destination, error) {
	log := logger.FromContext(ctx)

	if req.ClientID == "" {
		return models.Destination{}, ErrValidationEmptyClientID
	}

	normalized := models.NormalizePath(req.Path)
	if normalized == "" {
		return models.Destination{}, ErrValidationEmptyPath
	}
	if !normalized.IsAbs() {
		return models.Destination{}, fmt.Errorf("%w: %q", ErrValidationPathNotAbsolute, req.Path)
	}

	color := ""
	if req.Color != "" {
		c, ok := palette.Normalize(req.Color)
		if !ok {
			return models.Destination{}, fmt.Errorf("%w: %q", ErrValidationInvalidColor, req.Color)
		}
		color = c
	}

	var driveID *int64
	drive, err := s.driveService.DriveForPath(ctx, userID, req.ClientID, models.ClientPath(req.Path))
	if err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Str("client_id", req.ClientID).
			Str("path", string(normalized)).
			Msg("drive resolution for destination failed")
		return models.Destination{}, fmt.Errorf("resolving drive for destination failed: %w", err)
	}
	if drive != nil {
		driveID = &drive.ID
	}

	dest, err := s.destinations.Add(ctx, store.AddDestinationParams{
		UserID:   userID,
		Path:     normalized,
		Category: req.Category,
		Color:    color,
		DriveID:  driveID,
	})
	if err != nil {
		return models.Destination{}, fmt.Errorf("adding destination failed: %w", err)
	}

	return dest, nil
}

// Remove implements [DestinationService].
func (s *destinationService) Remove(ctx context.Context, userID, destinationID int64) (models.RemoveDestinationResponse, error) {
	res, err := s.destinations.Remove(ctx, userID, destinationID)
	if err != nil {
		return models.RemoveDestinationResponse{}, fmt.Errorf("removing destination failed: %w", err)
	}

	return models.RemoveDestinationResponse{Removed: res.Removed, Cascaded: res.Cascaded}, nil
}

// ListForClient implements [DestinationService].
func (s *destinationService) ListForClient(ctx context.Context, userID int64, clientID string) ([]models.DestinationView, error) {
	if clientID == "" {
		return nil, ErrValidationEmptyClientID
	}

	views, err := s.destinations.ListForClient(ctx, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing destinations failed: %w", err)
	}

	return views, nil
}

// ListByCategory implements [DestinationService].
func (s *destinationService) ListByCategory(ctx context.Context, userID int64, category string) ([]models.Destination, error) {
	if category == "" {
		return nil, ErrInvalidDataProvided
	}

	dests, err := s.destinations.ListByCategory(ctx, userID, category)
	if err != nil {
		return nil, fmt.Errorf("listing destinations by category failed: %w", err)
	}

	return dests, nil
}

// RecordDestination implements [DestinationService] and, through it, the
// executor's capture callback. Identity comes from the request context the
// executor inherited from the originating call.
func (s *destinationService) RecordDestination(ctx context.Context, dir models.ClientPath, category string) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrNoUserInContext
	}
	clientID, _ := utils.GetClientIDFromContext(ctx)

	_, err := s.Add(ctx, userID, models.AddDestinationRequest{
		ClientID: clientID,
		Path:     string(dir),
		Category: category,
	})
	return err
}
