package http

import (
	"encoding/json"
	"net/http"

	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/internal/utils"
	"github.com/MikVR7/Homie-sub000/models"
)

func (h *Handler) registerDrives(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.registerDrives").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	var registerRequest models.RegisterDrivesRequest
	if err := json.NewDecoder(r.Body).Decode(&registerRequest); err != nil {
		log.Err(err).Str("func", "*Handler.registerDrives").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.DriveService.RegisterDrives(ctx, userID, registerRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.registerDrives").Msg("error registering drives")
		http.Error(w, "error registering drives", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) setDriveAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.setDriveAvailability").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	var availabilityRequest models.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&availabilityRequest); err != nil {
		log.Err(err).Str("func", "*Handler.setDriveAvailability").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.DriveService.SetAvailability(ctx, userID, availabilityRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.setDriveAvailability").Msg("error setting drive availability")
		http.Error(w, "error setting drive availability", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) listDrives(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listDrives").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	drives, err := h.services.DriveService.ListDrives(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listDrives").Msg("error listing drives")
		http.Error(w, "error listing drives", statusFromError(err))
		return
	}

	utils.WriteJSON(w, drives, http.StatusOK)
}
