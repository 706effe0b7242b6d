// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package service

import (
	"github.com/MikVR7/Homie-sub000/internal/adapter"
	"github.com/MikVR7/Homie-sub000/internal/config"
	"github.com/MikVR7/Homie-sub000/internal/executor"
	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/internal/store"
)

// Services bundles every service the handler layer depends on.
type Services struct {
	AuthService        AuthService
	AppInfoService     AppInfoService
	DriveService       DriveService
	DestinationService DestinationService
	OrganizeService    OrganizeService
}

// NewServices wires the full service graph. The destination service doubles
// as the executor's capture callback, so the plan executor is built here,
// after it.
func NewServices(
	storages *store.Storages,
	suggester adapter.SuggestionClient,
	fs executor.FileExecutor,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	driveService := NewDriveService(storages.Drives, logger)
	destinationService := NewDestinationService(storages.Destinations, driveService, logger)
	planExecutor := executor.NewPlanExecutor(fs, destinationService, cfg.Executor, logger)

	return &Services{
		AuthService:        NewAuthService(cfg.App, logger),
		AppInfoService:     appInfoService,
		DriveService:       driveService,
		DestinationService: destinationService,
		OrganizeService:    NewOrganizeService(suggester, destinationService, driveService, planExecutor, logger),
	}, nil
}
