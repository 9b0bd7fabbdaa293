package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/voltshare/rental-backend/internal/rental"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{Error: msg, Code: code, Details: details})
}

// WriteDomainError maps a rental domain error to its HTTP status. Unknown
// errors become opaque 500s so storage details never leak to clients.
func WriteDomainError(w http.ResponseWriter, err error) {
	code := rental.CodeOf(err)
	status, msg := statusFor(code)
	if status == http.StatusInternalServerError {
		WriteError(w, status, string(rental.CodeStorage), "internal error", nil)
		return
	}
	WriteError(w, status, string(code), msg, nil)
}

func statusFor(code rental.Code) (int, string) {
	switch code {
	case rental.CodeUserNotFound:
		// the caller is already authenticated as this user; a missing row
		// is an invariant violation, not a client mistake
		return http.StatusInternalServerError, ""
	case rental.CodeBatteryNotFound, rental.CodeRentalNotFound:
		return http.StatusNotFound, "not found"
	case rental.CodeBatteryUnavailable:
		return http.StatusConflict, "battery not available"
	case rental.CodeRentalNotOngoing:
		return http.StatusConflict, "rental is not ongoing"
	case rental.CodeInsufficientBalance:
		return http.StatusPaymentRequired, "insufficient balance"
	case rental.CodeInvalidAmount:
		return http.StatusBadRequest, "amount must be a positive integer"
	case rental.CodeConflict:
		return http.StatusConflict, "please retry"
	default:
		return http.StatusInternalServerError, ""
	}
}
