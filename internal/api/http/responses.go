package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"registration-backend/internal/domain"
	"registration-backend/internal/logger"
)

// apiResponse is the envelope every endpoint answers with.
type apiResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode response", "error", err.Error())
	}
}

func respondSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, apiResponse{Success: true, Message: message, Data: data})
}

// respondError maps domain errors onto status codes. Anything unrecognized is
// a 500 with a generic message; the detail stays in the log.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		writeJSON(w, http.StatusBadRequest, apiResponse{
			Success: false,
			Message: "validation failed",
			Errors:  valErr.Fields,
		})
		return
	}

	var closedErr *domain.InstitutionClosedError
	if errors.As(err, &closedErr) {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: closedErr.Error()})
		return
	}

	var mismatchErr *domain.AmountMismatchError
	if errors.As(err, &mismatchErr) {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: mismatchErr.Error()})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, apiResponse{Success: false, Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicateTransactionID),
		errors.Is(err, domain.ErrCapacityExhausted):
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, apiResponse{Success: false, Message: err.Error()})
	default:
		logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Message: "internal server error"})
	}
}
