package agent

import (
	"context"

	"github.com/MikVR7/Homie-sub000/models"
)

// Scanner detects the storage volumes currently visible on this device.
type Scanner interface {
	Scan(ctx context.Context) ([]models.DriveInfo, error)
}

// StateStore persists the device's stable identity and the drive set of
// the previous report, so availability transitions can be detected.
type StateStore interface {
	// ClientID returns the device's stable client identifier, generating
	// and persisting one on first use.
	ClientID(ctx context.Context) (string, error)

	// LastReported returns the unique identifiers of the drives included
	// in the previous report.
	LastReported(ctx context.Context) ([]string, error)

	// SaveReported replaces the stored drive set with the given one.
	SaveReported(ctx context.Context, drives []models.DriveInfo) error
}

// Reporter delivers drive reports to the server.
type Reporter interface {
	RegisterDrives(ctx context.Context, req models.RegisterDrivesRequest) (models.RegisterDrivesResponse, error)
	SetAvailability(ctx context.Context, req models.AvailabilityRequest) (models.AvailabilityResponse, error)
}
