package agent

import (
	"context"
	"fmt"

	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/models"
)

// Agent runs one scan-and-report cycle: discover local volumes, register
// them with the server, retire drives that vanished since the previous
// report, and persist the new report set locally.
type Agent struct {
	scanner  Scanner
	state    StateStore
	reporter Reporter

	logger *logger.Logger
}

func New(scanner Scanner, state StateStore, reporter Reporter, log *logger.Logger) *Agent {
	return &Agent{
		scanner:  scanner,
		state:    state,
		reporter: reporter,
		logger:   log,
	}
}

func (a *Agent) Run(ctx context.Context) error {
	clientID, err := a.state.ClientID(ctx)
	if err != nil {
		return fmt.Errorf("resolve client id: %w", err)
	}

	drives, err := a.scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan mounts: %w", err)
	}
	a.logger.Info().Str("client_id", clientID).Int("drives", len(drives)).Msg("scanned local volumes")

	if len(drives) > 0 {
		response, err := a.reporter.RegisterDrives(ctx, models.RegisterDrivesRequest{
			ClientID: clientID,
			Drives:   drives,
		})
		if err != nil {
			return fmt.Errorf("register drives: %w", err)
		}
		for _, outcome := range response.Outcomes {
			if outcome.Error != "" {
				a.logger.Warn().
					Str("unique_identifier", outcome.UniqueIdentifier).
					Str("error", outcome.Error).
					Msg("drive report was rejected")
			}
		}
	}

	if err = a.retireVanished(ctx, clientID, drives); err != nil {
		return err
	}

	if err = a.state.SaveReported(ctx, drives); err != nil {
		return fmt.Errorf("persist reported drives: %w", err)
	}

	return nil
}

// retireVanished reports is_available=false for every drive present in the
// previous report but missing from the current scan. A server answering
// Updated=false means it never knew the drive, which is fine for a retire.
func (a *Agent) retireVanished(ctx context.Context, clientID string, drives []models.DriveInfo) error {
	previous, err := a.state.LastReported(ctx)
	if err != nil {
		return fmt.Errorf("read previous report: %w", err)
	}

	current := make(map[string]struct{}, len(drives))
	for _, drive := range drives {
		current[drive.UniqueIdentifier] = struct{}{}
	}

	for _, identifier := range previous {
		if _, stillMounted := current[identifier]; stillMounted {
			continue
		}

		_, err = a.reporter.SetAvailability(ctx, models.AvailabilityRequest{
			ClientID:         clientID,
			UniqueIdentifier: identifier,
			IsAvailable:      false,
		})
		if err != nil {
			return fmt.Errorf("retire drive %s: %w", identifier, err)
		}
		a.logger.Info().Str("unique_identifier", identifier).Msg("drive vanished since last report")
	}

	return nil
}
