package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikVR7/Homie-sub000/internal/adapter"
	"github.com/MikVR7/Homie-sub000/internal/utils"
	"github.com/MikVR7/Homie-sub000/models"
)

func TestOrganize_InjectsClientIDIntoContext(t *testing.T) {
	services := newTestServices()
	services.OrganizeService = &mockOrganizeSvc{
		organizeFn: func(ctx context.Context, userID int64, req models.OrganizeRequest) (models.OrganizeResponse, error) {
			assert.Equal(t, int64(42), userID)

			clientID, found := utils.GetClientIDFromContext(ctx)
			require.True(t, found, "handler should place the client ID into the context")
			assert.Equal(t, "laptop-a", clientID)

			return models.OrganizeResponse{
				Results: []models.ExecutionResult{{
					SourcePath:  "/home/me/Downloads/movie.mkv",
					FinalStatus: models.FinalStatusSuccess,
				}},
			}, nil
		},
	}
	h := newTestHandler(t, services)

	body := models.OrganizeRequest{ClientID: "laptop-a", Files: []models.ClientPath{"/home/me/Downloads/movie.mkv"}}
	req := httptest.NewRequest(http.MethodPost, "/api/organize", encodeBody(t, body))
	req = req.WithContext(ctxWithUser(42))
	rec := httptest.NewRecorder()

	h.organize(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "movie.mkv")
}

func TestOrganize_SuggestionServiceDownIsBadGateway(t *testing.T) {
	services := newTestServices()
	services.OrganizeService = &mockOrganizeSvc{
		organizeFn: func(_ context.Context, _ int64, _ models.OrganizeRequest) (models.OrganizeResponse, error) {
			return models.OrganizeResponse{}, adapter.ErrUnavailable
		},
	}
	h := newTestHandler(t, services)

	body := models.OrganizeRequest{ClientID: "laptop-a", Files: []models.ClientPath{"/home/me/Downloads/movie.mkv"}}
	req := httptest.NewRequest(http.MethodPost, "/api/organize", encodeBody(t, body))
	req = req.WithContext(ctxWithUser(42))
	rec := httptest.NewRecorder()

	h.organize(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestOrganize_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/organize", strings.NewReader(`{bad json}`))
	req = req.WithContext(ctxWithUser(42))
	rec := httptest.NewRecorder()

	h.organize(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExecutePlans_InjectsClientIDIntoContext(t *testing.T) {
	services := newTestServices()
	services.OrganizeService = &mockOrganizeSvc{
		executePlansFn: func(ctx context.Context, _ int64, req models.ExecutePlansRequest) (models.OrganizeResponse, error) {
			clientID, found := utils.GetClientIDFromContext(ctx)
			require.True(t, found)
			assert.Equal(t, "laptop-a", clientID)
			require.Len(t, req.Plans, 1)
			return models.OrganizeResponse{}, nil
		},
	}
	h := newTestHandler(t, services)

	body := models.ExecutePlansRequest{
		ClientID: "laptop-a",
		Plans: []models.OperationPlan{{
			SourcePath: "/home/me/Downloads/movie.mkv",
			Steps: []models.Step{{
				Order:      1,
				Type:       models.StepTypeMove,
				TargetPath: "/mnt/media/Movies/movie.mkv",
			}},
		}},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/plans/execute", encodeBody(t, body))
	req = req.WithContext(ctxWithUser(42))
	rec := httptest.NewRecorder()

	h.executePlans(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
