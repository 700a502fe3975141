package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/logger"
	"rentledger-backend/internal/security"
	"rentledger-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps service and domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case domain.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrRentalNotMigrated):
		status = http.StatusConflict
	case errors.Is(err, service.ErrNegativeAmount),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrMissingDate),
		errors.Is(err, service.ErrBadCursor),
		errors.Is(err, service.ErrMissingName),
		errors.Is(err, service.ErrInvalidRate),
		errors.Is(err, service.ErrInvalidRateType),
		errors.Is(err, service.ErrInvalidBadgeColor),
		errors.Is(err, service.ErrInvalidBadgeCharacter),
		errors.Is(err, service.ErrInvalidRentStatus):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return false
	}
	return true
}
