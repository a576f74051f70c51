package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tickerpulse/backend/internal/contracts"
	"github.com/tickerpulse/backend/internal/watchlist"
	"github.com/tickerpulse/backend/pkg/logger"
)

// WatchlistHandler handles watchlist API endpoints.
type WatchlistHandler struct {
	repo   *watchlist.Repository
	logger *logger.Logger
}

// NewWatchlistHandler creates a new watchlist handler.
func NewWatchlistHandler(repo *watchlist.Repository, log *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		repo:   repo,
		logger: log,
	}
}

// List returns all watched tickers.
// GET /api/watchlist
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list watchlist")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve watchlist")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    entries,
	})
}

type addWatchlistRequest struct {
	Ticker string `json:"ticker"`
}

// Add inserts a ticker into the watchlist.
// POST /api/watchlist
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	entry, err := h.repo.Add(r.Context(), req.Ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", req.Ticker).Error("Failed to add watchlist entry")
		respondError(w, http.StatusInternalServerError, "Failed to add watchlist entry")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    entry,
	})
}

// Remove deletes a ticker from the watchlist.
// DELETE /api/watchlist/{ticker}
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	if err := h.repo.Remove(r.Context(), ticker); err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			respondError(w, http.StatusNotFound, "ticker not on watchlist")
			return
		}
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to remove watchlist entry")
		respondError(w, http.StatusInternalServerError, "Failed to remove watchlist entry")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
