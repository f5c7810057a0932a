package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rental-pricing-backend/internal/imaging"
	"rental-pricing-backend/internal/logger"
	"rental-pricing-backend/internal/pricing"
	"rental-pricing-backend/internal/repository"
	"rental-pricing-backend/internal/service"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: RequestIDFromContext(r.Context())})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidEdit),
		errors.Is(err, imaging.ErrUnsupportedImage),
		errors.Is(err, pricing.ErrOrderRequired),
		errors.Is(err, pricing.ErrInvalidProduct):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps service errors to HTTP statuses. Internal errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "path", r.URL.Path, "requestID", RequestIDFromContext(r.Context()), "error", err)
		msg = "internal server error"
	}
	writeMessage(w, r, status, msg)
}
