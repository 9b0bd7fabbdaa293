package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/voltshare/rental-backend/internal/api/httpx"
	"github.com/voltshare/rental-backend/internal/middleware"
	"github.com/voltshare/rental-backend/internal/services"
)

type RentalHandler struct {
	rentals *services.RentalService
	queries *services.QueryService
	users   *services.UserService
}

func NewRentalHandler(rentals *services.RentalService, queries *services.QueryService, users *services.UserService) *RentalHandler {
	return &RentalHandler{rentals: rentals, queries: queries, users: users}
}

func (h *RentalHandler) Rent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing user", nil)
		return
	}
	var req struct {
		BatteryID string `json:"battery_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BatteryID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "battery_id required", nil)
		return
	}
	rentalID, err := h.rentals.Rent(r.Context(), userID, req.BatteryID)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]string{"rental_id": rentalID})
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing user", nil)
		return
	}
	rentalID := chi.URLParam(r, "id")
	var req struct {
		ReturnStationID *string `json:"return_station_id"`
	}
	// body is optional; an empty body means no destination station
	_ = json.NewDecoder(r.Body).Decode(&req)

	settlement, err := h.rentals.Return(r.Context(), userID, rentalID, req.ReturnStationID)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, settlement)
}

func (h *RentalHandler) Charge(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing user", nil)
		return
	}
	var req struct {
		AmountCents int64 `json:"amount_cents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json body", nil)
		return
	}
	balance, err := h.rentals.Charge(r.Context(), userID, req.AmountCents)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"balance_cents": balance})
}

func (h *RentalHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing user", nil)
		return
	}
	entries, err := h.queries.HistoryForUser(r.Context(), userID)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entries)
}

func (h *RentalHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing user", nil)
		return
	}
	u, err := h.users.Me(r.Context(), userID)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}
