package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/internal/store"
	"github.com/MikVR7/Homie-sub000/internal/utils"
	"github.com/MikVR7/Homie-sub000/models"
)

type mockDestinationRepository struct {
	AddFunc            func(ctx context.Context, params store.AddDestinationParams) (models.Destination, error)
	RemoveFunc         func(ctx context.Context, userID, destinationID int64) (store.RemoveResult, error)
	ListForClientFunc  func(ctx context.Context, userID int64, clientID string) ([]models.DestinationView, error)
	ListByCategoryFunc func(ctx context.Context, userID int64, category string) ([]models.Destination, error)
}

func (m *mockDestinationRepository) Add(ctx context.Context, params store.AddDestinationParams) (models.Destination, error) {
	return m.AddFunc(ctx, params)
}

func (m *mockDestinationRepository) Remove(ctx context.Context, userID, destinationID int64) (store.RemoveResult, error) {
	return m.RemoveFunc(ctx, userID, destinationID)
}

func (m *mockDestinationRepository) ListForClient(ctx context.Context, userID int64, clientID string) ([]models.DestinationView, error) {
	return m.ListForClientFunc(ctx, userID, clientID)
}

func (m *mockDestinationRepository) ListByCategory(ctx context.Context, userID int64, category string) ([]models.Destination, error) {
	return m.ListByCategoryFunc(ctx, userID, category)
}

type mockDriveService struct {
	DriveService
	DriveForPathFunc func(ctx context.Context, userID int64, clientID string, path models.ClientPath) (*models.Drive, error)
}

func (m *mockDriveService) DriveForPath(ctx context.Context, userID int64, clientID string, path models.ClientPath) (*models.Drive, error) {
	return m.DriveForPathFunc(ctx, userID, clientID, path)
}

func untrackedDrives() *mockDriveService {
	return &mockDriveService{
		DriveForPathFunc: func(context.Context, int64, string, models.ClientPath) (*models.Drive, error) {
			return nil, nil
		},
	}
}

func TestAddDestination_NormalizesPath(t *testing.T) {
	var got store.AddDestinationParams
	repo := &mockDestinationRepository{
		AddFunc: func(_ context.Context, params store.AddDestinationParams) (models.Destination, error) {
			got = params
			return models.Destination{ID: 1, Path: params.Path}, nil
		},
	}
	s := NewDestinationService(repo, untrackedDrives(), logger.Nop())

	tests := []struct {
		raw  string
		want models.Path
	}{
		{raw: "/data//Videos/", want: "/data/Videos"},
		{raw: `C:\Users\me\Downloads`, want: "C:/Users/me/Downloads"},
		{raw: "/data/Videos", want: "/data/Videos"},
	}
	for _, tt := range tests {
		_, err := s.Add(context.Background(), 42, models.AddDestinationRequest{
			ClientID: "laptop-a",
			Path:     tt.raw,
			Category: "Videos",
		})
		require.NoError(t, err, "path %q", tt.raw)
		assert.Equal(t, tt.want, got.Path, "path %q", tt.raw)
	}
}

func TestAddDestination_Validation(t *testing.T) {
	s := NewDestinationService(&mockDestinationRepository{}, untrackedDrives(), logger.Nop())

	_, err := s.Add(context.Background(), 42, models.AddDestinationRequest{Path: "/x"})
	assert.ErrorIs(t, err, ErrValidationEmptyClientID)

	_, err = s.Add(context.Background(), 42, models.AddDestinationRequest{ClientID: "laptop-a", Path: "   "})
	assert.ErrorIs(t, err, ErrValidationEmptyPath)

	_, err = s.Add(context.Background(), 42, models.AddDestinationRequest{ClientID: "laptop-a", Path: "relative/path"})
	assert.ErrorIs(t, err, ErrValidationPathNotAbsolute)

	_, err = s.Add(context.Background(), 42, models.AddDestinationRequest{ClientID: "laptop-a", Path: "/x", Color: "not-a-color"})
	assert.ErrorIs(t, err, ErrValidationInvalidColor)
}

func TestAddDestination_NormalizesColor(t *testing.T) {
	var got store.AddDestinationParams
	repo := &mockDestinationRepository{
		AddFunc: func(_ context.Context, params store.AddDestinationParams) (models.Destination, error) {
			got = params
			return models.Destination{}, nil
		},
	}
	s := NewDestinationService(repo, untrackedDrives(), logger.Nop())

	_, err := s.Add(context.Background(), 42, models.AddDestinationRequest{
		ClientID: "laptop-a",
		Path:     "/x",
		Color:    "#E6194B",
	})
	require.NoError(t, err)
	assert.Equal(t, "e6194b", got.Color)
}

func TestAddDestination_ResolvesDrive(t *testing.T) {
	drives := &mockDriveService{
		DriveForPathFunc: func(_ context.Context, _ int64, clientID string, path models.ClientPath) (*models.Drive, error) {
			assert.Equal(t, "laptop-a", clientID)
			assert.Equal(t, models.ClientPath("/media/usb/movies"), path)
			return &models.Drive{ID: 7}, nil
		},
	}
	var got store.AddDestinationParams
	repo := &mockDestinationRepository{
		AddFunc: func(_ context.Context, params store.AddDestinationParams) (models.Destination, error) {
			got = params
			return models.Destination{}, nil
		},
	}
	s := NewDestinationService(repo, drives, logger.Nop())

	_, err := s.Add(context.Background(), 42, models.AddDestinationRequest{
		ClientID: "laptop-a",
		Path:     "/media/usb/movies",
		Category: "Movies",
	})
	require.NoError(t, err)
	require.NotNil(t, got.DriveID)
	assert.Equal(t, int64(7), *got.DriveID)
}

func TestRemoveDestination_PassesThroughCascade(t *testing.T) {
	repo := &mockDestinationRepository{
		RemoveFunc: func(_ context.Context, userID, destinationID int64) (store.RemoveResult, error) {
			assert.Equal(t, int64(42), userID)
			assert.Equal(t, int64(3), destinationID)
			return store.RemoveResult{Removed: true, Cascaded: 2}, nil
		},
	}
	s := NewDestinationService(repo, untrackedDrives(), logger.Nop())

	resp, err := s.Remove(context.Background(), 42, 3)
	require.NoError(t, err)
	assert.True(t, resp.Removed)
	assert.Equal(t, int64(2), resp.Cascaded)
}

func TestListForClient_RequiresClientID(t *testing.T) {
	s := NewDestinationService(&mockDestinationRepository{}, untrackedDrives(), logger.Nop())

	_, err := s.ListForClient(context.Background(), 42, "")
	assert.ErrorIs(t, err, ErrValidationEmptyClientID)
}

func TestRecordDestination_UsesContextIdentity(t *testing.T) {
	var got store.AddDestinationParams
	repo := &mockDestinationRepository{
		AddFunc: func(_ context.Context, params store.AddDestinationParams) (models.Destination, error) {
			got = params
			return models.Destination{}, nil
		},
	}
	s := NewDestinationService(repo, untrackedDrives(), logger.Nop())

	ctx := context.WithValue(context.Background(), utils.UserIDCtxKey, int64(42))
	ctx = context.WithValue(ctx, utils.ClientIDCtxKey, "laptop-a")

	err := s.RecordDestination(ctx, "/media/movies", "auto")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, models.Path("/media/movies"), got.Path)
	assert.Equal(t, "auto", got.Category)
}

func TestRecordDestination_NoUserInContext(t *testing.T) {
	s := NewDestinationService(&mockDestinationRepository{}, untrackedDrives(), logger.Nop())

	err := s.RecordDestination(context.Background(), "/media/movies", "auto")
	assert.ErrorIs(t, err, ErrNoUserInContext)
}

func TestAddDestination_RepositoryErrorIsWrapped(t *testing.T) {
	repo := &mockDestinationRepository{
		AddFunc: func(context.Context, store.AddDestinationParams) (models.Destination, error) {
			return models.Destination{}, errors.New("db down")
		},
	}
	s := NewDestinationService(repo, untrackedDrives(), logger.Nop())

	_, err := s.Add(context.Background(), 42, models.AddDestinationRequest{ClientID: "laptop-a", Path: "/x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adding destination failed")
}
