package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tickerpulse/backend/internal/contracts"
	"github.com/tickerpulse/backend/pkg/logger"
)

// ReportBuilder assembles a full analyst report for one ticker.
type ReportBuilder interface {
	BuildReport(ctx context.Context, ticker string) (*contracts.AnalystReport, error)
}

// ReportHandler handles analyst report API endpoints.
type ReportHandler struct {
	builder ReportBuilder
	logger  *logger.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(builder ReportBuilder, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		builder: builder,
		logger:  log,
	}
}

// GetReport returns the full analyst report for a ticker.
// GET /api/report/{ticker}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	rpt, err := h.builder.BuildReport(ctx, ticker)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to build report")
		respondError(w, statusForError(err), "Failed to build analyst report")
		return
	}

	respondJSON(w, http.StatusOK, rpt)
}
