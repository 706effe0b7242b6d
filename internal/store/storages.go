// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MikVR7

package store

import (
	"github.com/MikVR7/Homie-sub000/internal/logger"
)

// Storages bundles every repository the service layer depends on.
type Storages struct {
	Drives       DriveRepository
	Destinations DestinationRepository
}

// NewStorages wires all repositories over a single database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	logger.Debug().Msg("creating storages")
	return &Storages{
		Drives:       NewDriveRepository(db, logger),
		Destinations: NewDestinationRepository(db, logger),
	}
}
