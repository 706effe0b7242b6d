package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/internal/utils"
	"github.com/MikVR7/Homie-sub000/models"
)

func (h *Handler) organize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.organize").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	var organizeRequest models.OrganizeRequest
	if err := json.NewDecoder(r.Body).Decode(&organizeRequest); err != nil {
		log.Err(err).Str("func", "*Handler.organize").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// The executor records learned destinations after successful plans and
	// reads the reporting client's identity from the context.
	ctx = context.WithValue(ctx, utils.ClientIDCtxKey, organizeRequest.ClientID)

	response, err := h.services.OrganizeService.Organize(ctx, userID, organizeRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.organize").Msg("error organizing files")
		http.Error(w, "error organizing files", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) executePlans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.executePlans").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	var executeRequest models.ExecutePlansRequest
	if err := json.NewDecoder(r.Body).Decode(&executeRequest); err != nil {
		log.Err(err).Str("func", "*Handler.executePlans").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	ctx = context.WithValue(ctx, utils.ClientIDCtxKey, executeRequest.ClientID)

	response, err := h.services.OrganizeService.ExecutePlans(ctx, userID, executeRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.executePlans").Msg("error executing plans")
		http.Error(w, "error executing plans", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
