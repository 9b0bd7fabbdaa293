package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/voltshare/rental-backend/internal/api/httpx"
	"github.com/voltshare/rental-backend/internal/repository"
	"github.com/voltshare/rental-backend/internal/services"
)

type StationHandler struct {
	queries *services.QueryService
}

func NewStationHandler(queries *services.QueryService) *StationHandler {
	return &StationHandler{queries: queries}
}

func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	stations, err := h.queries.Stations(r.Context())
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stations)
}

func (h *StationHandler) Batteries(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "id")
	batteries, err := h.queries.BatteriesAt(r.Context(), stationID)
	if err != nil {
		if errors.Is(err, repository.ErrStationNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "station_not_found", "station not found", nil)
			return
		}
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, batteries)
}
