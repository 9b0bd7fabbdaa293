package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/voltshare/rental-backend/internal/api/httpx"
	"github.com/voltshare/rental-backend/internal/api/validate"
	"github.com/voltshare/rental-backend/internal/services"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json body", nil)
		return
	}
	if err := validate.Collect(
		validate.Required("email", req.Email),
		validate.Email("email", req.Email),
		validate.Required("password", req.Password),
	); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", "invalid request", err)
		return
	}
	u, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			httpx.WriteError(w, http.StatusConflict, "email_taken", err.Error(), nil)
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", err.Error(), nil)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json body", nil)
		return
	}
	pair, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "refresh_token required", nil)
		return
	}
	pair, err := h.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid refresh token", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}
