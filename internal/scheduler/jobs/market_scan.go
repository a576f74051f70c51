// Package jobs contains the scheduled job implementations.
package jobs

import (
	"context"
	"fmt"

	"github.com/tickerpulse/backend/internal/contracts"
	"github.com/tickerpulse/backend/pkg/logger"
)

// MarketScanner assembles the market scan lists.
type MarketScanner interface {
	TopMovers(ctx context.Context) (*contracts.ScanResult[contracts.Mover], error)
	SqueezeCandidates(ctx context.Context) (*contracts.ScanResult[contracts.SqueezeCandidate], error)
}

// MarketScanJob runs both market scans during trading hours so provider
// problems surface in the job history before a user hits the endpoint.
type MarketScanJob struct {
	scanner MarketScanner
	logger  *logger.Logger
}

// NewMarketScanJob creates a new market scan job.
func NewMarketScanJob(scanner MarketScanner, log *logger.Logger) *MarketScanJob {
	return &MarketScanJob{
		scanner: scanner,
		logger:  log,
	}
}

// Name returns the job name.
func (j *MarketScanJob) Name() string {
	return "market_scan"
}

// Schedule returns the cron schedule (every 30 minutes during US
// market hours, with seconds).
func (j *MarketScanJob) Schedule() string {
	return "0 */30 9-16 * * MON-FRI"
}

// Run executes both scans.
func (j *MarketScanJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled market scan")

	movers, err := j.scanner.TopMovers(ctx)
	if err != nil {
		return fmt.Errorf("top movers scan: %w", err)
	}

	squeeze, err := j.scanner.SqueezeCandidates(ctx)
	if err != nil {
		return fmt.Errorf("squeeze scan: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"movers":      len(movers.Candidates),
		"movers_live": movers.IsLive,
		"squeeze":     len(squeeze.Candidates),
	}).Info("Scheduled market scan completed successfully")

	return nil
}
