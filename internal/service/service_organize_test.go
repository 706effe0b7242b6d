package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikVR7/Homie-sub000/internal/config"
	"github.com/MikVR7/Homie-sub000/internal/executor"
	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/models"
)

type mockSuggester struct {
	SuggestFunc func(ctx context.Context, req models.SuggestionRequest) ([]models.OperationPlan, error)
}

func (m *mockSuggester) Suggest(ctx context.Context, req models.SuggestionRequest) ([]models.OperationPlan, error) {
	return m.SuggestFunc(ctx, req)
}

type mockDestinationService struct {
	DestinationService
	ListForClientFunc func(ctx context.Context, userID int64, clientID string) ([]models.DestinationView, error)
}

func (m *mockDestinationService) ListForClient(ctx context.Context, userID int64, clientID string) ([]models.DestinationView, error) {
	return m.ListForClientFunc(ctx, userID, clientID)
}

func (m *mockDestinationService) RecordDestination(context.Context, models.ClientPath, string) error {
	return nil
}

type mockDriveLister struct {
	DriveService
	ListDrivesFunc func(ctx context.Context, userID int64) ([]models.Drive, error)
}

func (m *mockDriveLister) ListDrives(ctx context.Context, userID int64) ([]models.Drive, error) {
	return m.ListDrivesFunc(ctx, userID)
}

// noopFS implements executor.FileExecutor; every operation succeeds.
type noopFS struct{}

func (noopFS) Move(context.Context, models.ClientPath, models.ClientPath, bool) error { return nil }
func (noopFS) Rename(_ context.Context, src models.ClientPath, _ string) (models.ClientPath, error) {
	return src, nil
}
func (noopFS) Unpack(context.Context, models.ClientPath, models.ClientPath) error { return nil }
func (noopFS) Delete(context.Context, models.ClientPath) error                    { return nil }

func newOrganizeService(t *testing.T, suggester *mockSuggester, dests DestinationService, drives DriveService) OrganizeService {
	t.Helper()
	planExec := executor.NewPlanExecutor(noopFS{}, &mockDestinationService{}, config.Executor{
		PlanTimeout:      time.Minute,
		BatchParallelism: 2,
	}, logger.Nop())
	return NewOrganizeService(suggester, dests, drives, planExec, logger.Nop())
}

func destinationViews() []models.DestinationView {
	return []models.DestinationView{
		{Destination: models.Destination{ID: 1, Path: "/media/movies", Category: "Movies", UsageCount: 9}, Reachable: true},
		{Destination: models.Destination{ID: 2, Path: "/docs/invoices", Category: "Documents", UsageCount: 4}, Reachable: true},
		{Destination: models.Destination{ID: 3, Path: "/media/shows", Category: "Movies", UsageCount: 2}, Reachable: true},
	}
}

func TestOrganize_BuildsContextAndExecutesPlans(t *testing.T) {
	var gotReq models.SuggestionRequest
	suggester := &mockSuggester{
		SuggestFunc: func(_ context.Context, req models.SuggestionRequest) ([]models.OperationPlan, error) {
			gotReq = req
			return []models.OperationPlan{
				{
					SourcePath: "/downloads/f.mkv",
					Category:   "Movies",
					Steps:      []models.Step{{Order: 1, Type: models.StepTypeMove, TargetPath: "/media/movies/f.mkv"}},
				},
			}, nil
		},
	}
	dests := &mockDestinationService{
		ListForClientFunc: func(context.Context, int64, string) ([]models.DestinationView, error) {
			return destinationViews(), nil
		},
	}
	drives := &mockDriveLister{
		ListDrivesFunc: func(context.Context, int64) ([]models.Drive, error) {
			return []models.Drive{{ID: 1, UniqueIdentifier: "usb-1"}}, nil
		},
	}
	s := newOrganizeService(t, suggester, dests, drives)

	resp, err := s.Organize(context.Background(), 42, models.OrganizeRequest{
		ClientID: "laptop-a",
		Files:    []models.ClientPath{"/downloads/f.mkv"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, models.FinalStatusSuccess, resp.Results[0].FinalStatus)

	// Context carries the client, grouped destinations, and drives.
	assert.Equal(t, "laptop-a", gotReq.Context.ClientID)
	require.Len(t, gotReq.Context.Categories, 2)
	assert.Equal(t, "Documents", gotReq.Context.Categories[0].Category)
	assert.Equal(t, "Movies", gotReq.Context.Categories[1].Category)
	assert.Len(t, gotReq.Context.Categories[1].Destinations, 2)
	assert.Len(t, gotReq.Context.Drives, 1)
	assert.Equal(t, []models.ClientPath{"/downloads/f.mkv"}, gotReq.Files)
}

func TestOrganize_Validation(t *testing.T) {
	s := newOrganizeService(t, &mockSuggester{}, &mockDestinationService{}, &mockDriveLister{})

	_, err := s.Organize(context.Background(), 42, models.OrganizeRequest{Files: []models.ClientPath{"/f"}})
	assert.ErrorIs(t, err, ErrValidationEmptyClientID)

	_, err = s.Organize(context.Background(), 42, models.OrganizeRequest{ClientID: "laptop-a"})
	assert.ErrorIs(t, err, ErrValidationNoFilesProvided)
}

func TestOrganize_SuggesterFailure(t *testing.T) {
	suggester := &mockSuggester{
		SuggestFunc: func(context.Context, models.SuggestionRequest) ([]models.OperationPlan, error) {
			return nil, errors.New("service down")
		},
	}
	dests := &mockDestinationService{
		ListForClientFunc: func(context.Context, int64, string) ([]models.DestinationView, error) {
			return nil, nil
		},
	}
	drives := &mockDriveLister{
		ListDrivesFunc: func(context.Context, int64) ([]models.Drive, error) { return nil, nil },
	}
	s := newOrganizeService(t, suggester, dests, drives)

	_, err := s.Organize(context.Background(), 42, models.OrganizeRequest{
		ClientID: "laptop-a",
		Files:    []models.ClientPath{"/f"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requesting plans failed")
}

func TestOrganize_RejectsInvalidSuggestedPlans(t *testing.T) {
	suggester := &mockSuggester{
		SuggestFunc: func(context.Context, models.SuggestionRequest) ([]models.OperationPlan, error) {
			return []models.OperationPlan{
				{SourcePath: "/f", Steps: []models.Step{{Order: 1, Type: "shred"}}},
			}, nil
		},
	}
	dests := &mockDestinationService{
		ListForClientFunc: func(context.Context, int64, string) ([]models.DestinationView, error) {
			return nil, nil
		},
	}
	drives := &mockDriveLister{
		ListDrivesFunc: func(context.Context, int64) ([]models.Drive, error) { return nil, nil },
	}
	s := newOrganizeService(t, suggester, dests, drives)

	_, err := s.Organize(context.Background(), 42, models.OrganizeRequest{
		ClientID: "laptop-a",
		Files:    []models.ClientPath{"/f"},
	})
	assert.ErrorIs(t, err, ErrValidationInvalidStep)
}

func TestExecutePlans_RunsCallerSuppliedPlans(t *testing.T) {
	s := newOrganizeService(t, &mockSuggester{}, &mockDestinationService{}, &mockDriveLister{})

	resp, err := s.ExecutePlans(context.Background(), 42, models.ExecutePlansRequest{
		ClientID: "laptop-a",
		Plans: []models.OperationPlan{
			{
				SourcePath: "/downloads/a.txt",
				Steps: []models.Step{
					{Order: 1, Type: models.StepTypeMove, TargetPath: "/archive/a.txt"},
				},
			},
			{
				SourcePath: "/downloads/b.txt",
				Steps:      []models.Step{{Order: 1, Type: models.StepTypeDelete}},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, models.FinalStatusSuccess, resp.Results[0].FinalStatus)
	assert.Equal(t, models.FinalStatusSuccess, resp.Results[1].FinalStatus)
}

func TestExecutePlans_Validation(t *testing.T) {
	s := newOrganizeService(t, &mockSuggester{}, &mockDestinationService{}, &mockDriveLister{})

	_, err := s.ExecutePlans(context.Background(), 42, models.ExecutePlansRequest{})
	assert.ErrorIs(t, err, ErrValidationEmptyClientID)

	_, err = s.ExecutePlans(context.Background(), 42, models.ExecutePlansRequest{ClientID: "laptop-a"})
	assert.ErrorIs(t, err, ErrValidationNoPlansProvided)

	_, err = s.ExecutePlans(context.Background(), 42, models.ExecutePlansRequest{
		ClientID: "laptop-a",
		Plans:    []models.OperationPlan{{Steps: []models.Step{{Order: 1, Type: models.StepTypeDelete}}}},
	})
	assert.ErrorIs(t, err, ErrValidationInvalidStep)
}
