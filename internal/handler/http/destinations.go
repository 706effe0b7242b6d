package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MikVR7/Homie-sub000/internal/logger"
	"github.com/MikVR7/Homie-sub000/internal/utils"
	"github.com/MikVR7/Homie-sub000/models"
)

func (h *Handler) addDestination(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.addDestination").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	var addRequest models.AddDestinationRequest
	if err := json.NewDecoder(r.Body).Decode(&addRequest); err != nil {
		log.Err(err).Str("func", "*Handler.addDestination").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	destination, err := h.services.DestinationService.Add(ctx, userID, addRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.addDestination").Msg("error adding destination")
		http.Error(w, "error adding destination", statusFromError(err))
		return
	}

	utils.WriteJSON(w, destination, http.StatusCreated)
}

func (h *Handler) removeDestination(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.removeDestination").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	destinationID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Err(err).Str("func", "*Handler.removeDestination").Msg("invalid destination id")
		http.Error(w, "invalid destination id", http.StatusBadRequest)
		return
	}

	response, err := h.services.DestinationService.Remove(ctx, userID, destinationID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.removeDestination").Msg("error removing destination")
		http.Error(w, "error removing destination", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) listDestinationsForClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listDestinationsForClient").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	clientID := r.URL.Query().Get("client_id")

	destinations, err := h.services.DestinationService.ListForClient(ctx, userID, clientID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listDestinationsForClient").Msg("error listing destinations")
		http.Error(w, "error listing destinations", statusFromError(err))
		return
	}

	utils.WriteJSON(w, destinations, http.StatusOK)
}

func (h *Handler) listDestinationsByCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listDestinationsByCategory").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusUnauthorized)
		return
	}

	category := chi.URLParam(r, "category")

	destinations, err := h.services.DestinationService.ListByCategory(ctx, userID, category)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listDestinationsByCategory").Msg("error listing destinations by category")
		http.Error(w, "error listing destinations by category", statusFromError(err))
		return
	}

	utils.WriteJSON(w, destinations, http.StatusOK)
}
