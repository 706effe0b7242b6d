package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikVR7/Homie-sub000/internal/service"
	"github.com/MikVR7/Homie-sub000/models"
)

// newRouteContext attaches a chi route parameter to the request so handler
// methods can be exercised without going through the router.
func newRouteContext(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestAddDestination_Success(t *testing.T) {
	services := newTestServices()
	services.DestinationService = &mockDestinationSvc{
		addFn: func(_ context.Context, userID int64, req models.AddDestinationRequest) (models.Destination, error) {
			assert.Equal(t, int64(42), userID)
			assert.Equal(t, "laptop-a", req.ClientID)
			return models.Destination{ID: 3, Path: "/mnt/media/Movies", Category: "Movies", Color: "e6194b", IsActive: true}, nil
		},
	}
	h := newTestHandler(t, services)

	body := models.AddDestinationRequest{ClientID: "laptop-a", Path: "/mnt/media/Movies", Category: "Movies"}
	req := httptest.NewRequest(http.MethodPost, "/api/destinations", encodeBody(t, body))
	req = req.WithContext(ctxWithUser(42))
	rec := httptest.NewRecorder()

	h.addDestination(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var destination models.Destination
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &destination))
	assert.Equal(t, int64(3), destination.ID)
	assert.Equal(t, "e6194b", destination.Color)
}

func TestAddDestination_ValidationErrorIsBadRequest(t *testing.T) {
	services := newTestServices()
	services.DestinationService = &mockDestinationSvc{
		addFn: func(_ context.Context, _ int64, _ models.AddDestinationRequest) (models.Destination, error) {
			return models.Destination{}, service.ErrValidationPathNotAbsolute
		},
	}
	h := newTestHandler(t, services)

	req := httptest.NewRequest(http.MethodPost, "/api/destinations", strings.NewReader(`{"client_id":"laptop-a","path":"relative/path"}`))
	req = req.WithContext(ctxWithUser(42))
	rec := httptest.NewRecorder()

	h.addDestination(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveDestination_ReportsCascade(t *testing.T) {
	services := newTestServices()
	services.DestinationService = &mockDestinationSvc{
		removeFn: func(_ context.Context, userID, destinationID int64) (models.RemoveDestinationResponse, error) {
			assert.Equal(t, int64(42), userID)
			assert.Equal(t, int64(3), destinationID)
			return models.RemoveDestinationResponse{Removed: true, Cascaded: 2}, nil
		},
	}
	h := newTestHandler(t, services)

	req := httptest.NewRequest(http.MethodDelete, "/api/destinations/3", nil)
	req = req.WithContext(ctxWithUser(42))
	req = newRouteContext(req, "id", "3")
	rec := httptest.NewRecorder()

	h.removeDestination(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removed": true, "cascaded": 2}`, rec.Body.String())
}

func TestRemoveDestination_NonNumericID(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/destinations/abc", nil)
	req = req.WithContext(ctxWithUser(42))
	req = newRouteContext(req, "id", "abc")
	rec := httptest.NewRecorder()

	h.removeDestination(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListDestinationsForClient_PassesQueryParam(t *testing.T) {
	services := newTestServices()
	services.DestinationService = &mockDestinationSvc{
		listForClientFn: func(_ context.Context, _ int64, clientID string) ([]models.DestinationView, error) {
			assert.Equal(t, "laptop-a", clientID)
			return []models.DestinationView{
				{Destination: models.Destination{ID: 1, Path: "/mnt/media/Movies"}, Reachable: true},
			}, nil
		},
	}
	h := newTestHandler(t, services)

	req := httptest.NewRequest(http.MethodGet, "/api/destinations?client_id=laptop-a", nil)
	req = req.WithContext(ctxWithUser(42))
	rec := httptest.NewRecorder()

	h.listDestinationsForClient(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/mnt/media/Movies")
}

func TestListDestinationsForClient_MissingClientID(t *testing.T) {
	services := newTestServices()
	services.DestinationService = &mockDestinationSvc{
		listForClientFn: func(_ context.Context, _ int64, clientID string) ([]models.DestinationView, error) {
			if clientID == "" {
				return nil, service.ErrValidationEmptyClientID
			}
			return nil, nil
		},
	}
	h := newTestHandler(t, services)

	req := httptest.NewRequest(http.MethodGet, "/api/destinations", nil)
	req = req.WithContext(ctxWithUser(42))
	rec := httptest.NewRecorder()

	h.listDestinationsForClient(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListDestinationsByCategory_UsesURLParam(t *testing.T) {
	services := newTestServices()
	services.DestinationService = &mockDestinationSvc{
		listByCategoryFn: func(_ context.Context, _ int64, category string) ([]models.Destination, error) {
			assert.Equal(t, "Movies", category)
			return []models.Destination{{ID: 1, Category: "Movies"}}, nil
		},
	}
	h := newTestHandler(t, services)

	req := httptest.NewRequest(http.MethodGet, "/api/destinations/category/Movies", nil)
	req = req.WithContext(ctxWithUser(42))
	req = newRouteContext(req, "category", "Movies")
	rec := httptest.NewRecorder()

	h.listDestinationsByCategory(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Movies")
}
