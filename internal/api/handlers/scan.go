package handlers

import (
	"context"
	"net/http"

	"github.com/tickerpulse/backend/internal/contracts"
	"github.com/tickerpulse/backend/pkg/logger"
)

// MarketScanner assembles the market scan lists.
type MarketScanner interface {
	TopMovers(ctx context.Context) (*contracts.ScanResult[contracts.Mover], error)
	SqueezeCandidates(ctx context.Context) (*contracts.ScanResult[contracts.SqueezeCandidate], error)
}

// ScanHandler handles market scan API endpoints.
type ScanHandler struct {
	scanner MarketScanner
	logger  *logger.Logger
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(scanner MarketScanner, log *logger.Logger) *ScanHandler {
	return &ScanHandler{
		scanner: scanner,
		logger:  log,
	}
}

// GetTopMovers returns today's top gainers.
// GET /api/scan/movers
//
// A provider failure is not a handler failure: the frontend still gets
// a well-formed body with an empty list and isLive false.
func (h *ScanHandler) GetTopMovers(w http.ResponseWriter, r *http.Request) {
	result, err := h.scanner.TopMovers(r.Context())
	if err != nil {
		h.logger.WithError(err).Warn("Top movers scan degraded")
	}

	respondJSON(w, http.StatusOK, result)
}

// GetSqueezeCandidates returns squeeze scan candidates.
// GET /api/scan/squeeze
func (h *ScanHandler) GetSqueezeCandidates(w http.ResponseWriter, r *http.Request) {
	result, err := h.scanner.SqueezeCandidates(r.Context())
	if err != nil {
		h.logger.WithError(err).Warn("Squeeze scan degraded")
	}

	respondJSON(w, http.StatusOK, result)
}
