// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package service

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/MikVR7/Homie-sub000/internal/adapter"
	"github.com/MikVR7/Homie-sub000/internal/executor"
	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/models"
)

// organizeService is the concrete implementation of [OrganizeService]. It
// orchestrates the full cycle: build the reachability context, obtain
// plans from the suggestion service, execute them, return per-file
// results.
type organizeService struct {
	suggester    adapter.SuggestionClient
	destinations DestinationService
	drives       DriveService
	executor     *executor.PlanExecutor
	logger       *logger.Logger
}

// NewOrganizeService constructs an [OrganizeService].
func NewOrganizeService(
	suggester adapter.SuggestionClient,
	destinations DestinationService,
	drives DriveService,
	planExecutor *executor.PlanExecutor,
	logger *logger.Logger,
) OrganizeService {
	return &organizeService{
		suggester:    suggester,
		destinations: destinations,
		drives:       drives,
		executor:     planExecutor,
		logger:       logger,
	}
}

// Organize implements [OrganizeService].
func (s *organizeService) Organize(ctx context.Context, userID int64, req models.OrganizeRequest) (models.OrganizeResponse, error) {
	log := logger.FromContext(ctx)

	if req.ClientID == "" {
		return models.OrganizeResponse{}, ErrValidationEmptyClientID
	}
	if len(req.Files) == 0 {
		return models.OrganizeResponse{}, ErrValidationNoFilesProvided
	}

	sctx, err := s.buildContext(ctx, userID, req.ClientID)
	if err != nil {
		return models.OrganizeResponse{}, err
	}

	plans, err := s.suggester.Suggest(ctx, models.SuggestionRequest{
		Context: sctx,
		Files:   req.Files,
	})
	if err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Str("client_id", req.ClientID).
			Int("files", len(req.Files)).
			Msg("suggestion request failed")
		return models.OrganizeResponse{}, fmt.Errorf("requesting plans failed: %w", err)
	}

	if err := validatePlans(plans); err != nil {
		return models.OrganizeResponse{}, err
	}

	results := s.executor.ExecuteAll(ctx, plans)

	return models.OrganizeResponse{Results: results}, nil
}

// ExecutePlans implements [OrganizeService].
func (s *organizeService) ExecutePlans(ctx context.Context, userID int64, req models.ExecutePlansRequest) (models.OrganizeResponse, error) {
	if req.ClientID == "" {
		return models.OrganizeResponse{}, ErrValidationEmptyClientID
	}
	if len(req.Plans) == 0 {
		return models.OrganizeResponse{}, ErrValidationNoPlansProvided
	}
	if err := validatePlans(req.Plans); err != nil {
		return models.OrganizeResponse{}, err
	}

	results := s.executor.ExecuteAll(ctx, req.Plans)

	return models.OrganizeResponse{Results: results}, nil
}

// buildContext assembles the suggestion context from the destination and
// drive listings. The two queries are independent and run concurrently.
func (s *organizeService) buildContext(ctx context.Context, userID int64, clientID string) (models.SuggestionContext, error) {
	var (
		views  []models.DestinationView
		drives []models.Drive
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		views, err = s.destinations.ListForClient(gctx, userID, clientID)
		return err
	})
	g.Go(func() error {
		var err error
		drives, err = s.drives.ListDrives(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.SuggestionContext{}, fmt.Errorf("building suggestion context failed: %w", err)
	}

	return models.SuggestionContext{
		ClientID:   clientID,
		Categories: groupByCategory(views),
		Drives:     drives,
	}, nil
}

// groupByCategory groups destination views by category label. Groups are
// ordered alphabetically for a stable context; within a group the
// repository's usage ordering is preserved.
func groupByCategory(views []models.DestinationView) []models.CategoryContext {
	byCategory := make(map[string][]models.DestinationView)
	for _, v := range views {
		byCategory[v.Category] = append(byCategory[v.Category], v)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	groups := make([]models.CategoryContext, 0, len(categories))
	for _, c := range categories {
		groups = append(groups, models.CategoryContext{
			Category:     c,
			Destinations: byCategory[c],
		})
	}

	return groups
}

func validatePlans(plans []models.OperationPlan) error {
	for _, plan := range plans {
		if plan.SourcePath == "" {
			return fmt.Errorf("%w: plan without source path", ErrValidationInvalidStep)
		}
		for _, step := range plan.Steps {
			if !step.Type.Valid() {
				return fmt.Errorf("%w: unknown type %q", ErrValidationInvalidStep, step.Type)
			}
			if step.Type != models.StepTypeDelete && step.TargetPath == "" {
				return fmt.Errorf("%w: %s step without target path", ErrValidationInvalidStep, step.Type)
			}
		}
	}
	return nil
}
