package jobs

import (
	"context"
	"fmt"

	"github.com/tickerpulse/backend/internal/contracts"
	"github.com/tickerpulse/backend/internal/watchlist"
	"github.com/tickerpulse/backend/pkg/logger"
)

// ReportBuilder assembles a full analyst report for one ticker.
type ReportBuilder interface {
	BuildReport(ctx context.Context, ticker string) (*contracts.AnalystReport, error)
}

// WatchlistReportJob refreshes analyst reports for every watched ticker
// after the close. Per-ticker failures are logged and skipped; the job
// fails only when no ticker could be refreshed.
type WatchlistReportJob struct {
	repo    *watchlist.Repository
	builder ReportBuilder
	logger  *logger.Logger
}

// NewWatchlistReportJob creates a new watchlist report job.
func NewWatchlistReportJob(repo *watchlist.Repository, builder ReportBuilder, log *logger.Logger) *WatchlistReportJob {
	return &WatchlistReportJob{
		repo:    repo,
		builder: builder,
		logger:  log,
	}
}

// Name returns the job name.
func (j *WatchlistReportJob) Name() string {
	return "watchlist_reports"
}

// Schedule returns the cron schedule (5 PM on weekdays, with seconds).
func (j *WatchlistReportJob) Schedule() string {
	return "0 0 17 * * MON-FRI"
}

// Run refreshes a report for each watchlist entry.
func (j *WatchlistReportJob) Run(ctx context.Context) error {
	entries, err := j.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list watchlist: %w", err)
	}

	if len(entries) == 0 {
		j.logger.Info("Watchlist empty, nothing to refresh")
		return nil
	}

	var failed int
	for _, entry := range entries {
		rpt, err := j.builder.BuildReport(ctx, entry.Ticker)
		if err != nil {
			failed++
			j.logger.WithError(err).WithField("ticker", entry.Ticker).Warn("Watchlist report refresh failed")
			continue
		}

		j.logger.WithFields(map[string]interface{}{
			"ticker": rpt.Ticker,
			"price":  rpt.Price,
		}).Debug("Watchlist report refreshed")
	}

	if failed == len(entries) {
		return fmt.Errorf("all %d watchlist report refreshes failed", failed)
	}

	j.logger.WithFields(map[string]interface{}{
		"total":  len(entries),
		"failed": failed,
	}).Info("Watchlist report refresh completed")

	return nil
}
