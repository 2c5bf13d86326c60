// Package httpapi holds the response helpers shared by the HTTP handlers:
// JSON encoding and the mapping from domain error kinds to status codes.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/marketway/storefront/internal/domain"
)

func WriteJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	WriteJSON(w, logger, status, map[string]string{"error": message})
}

// WriteDomainError maps a service error to a client-visible payload.
// Unclassified errors become a generic 500 without leaking internals.
func WriteDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, logger, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		WriteError(w, logger, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteError(w, logger, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrNotOwner):
		WriteError(w, logger, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidPrice):
		WriteError(w, logger, http.StatusBadRequest, err.Error())
	default:
		logger.Error("unexpected error", "error", err)
		WriteError(w, logger, http.StatusInternalServerError, "internal server error")
	}
}
