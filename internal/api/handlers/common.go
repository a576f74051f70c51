// Package handlers contains the HTTP route handlers. Each handler maps
// the sentinel errors of the provider layer onto HTTP status codes and
// keeps response shapes stable for the frontend.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tickerpulse/backend/internal/contracts"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusForError maps provider sentinel errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, contracts.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, contracts.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, contracts.ErrProviderUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
