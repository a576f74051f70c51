// Package scan builds the top-gainer and squeeze candidate lists from
// the bulk provider feed, refreshed against live quotes. Candidates
// carry explicit provenance: metrics no feed exposes are heuristic
// estimates, flagged as such, and force the result's IsLive flag off.
package scan

import (
	"context"
	"math"
	"sync"

	"github.com/tickerpulse/backend/internal/contracts"
	"github.com/tickerpulse/backend/pkg/config"
	"github.com/tickerpulse/backend/pkg/logger"
)

// Scanner assembles market scans. Stateless across invocations.
type Scanner struct {
	movers   contracts.MoverProvider
	quotes   contracts.QuoteProvider
	shortInt contracts.ShortInterestProvider // nil when not configured

	logger  *logger.Logger
	limit   int
	workers int
}

// NewScanner creates a scanner. shortInt may be nil.
func NewScanner(
	movers contracts.MoverProvider,
	quotes contracts.QuoteProvider,
	shortInt contracts.ShortInterestProvider,
	cfg config.ScanConfig,
	log *logger.Logger,
) *Scanner {
	limit := cfg.CandidateLimit
	if limit <= 0 {
		limit = 8
	}
	workers := cfg.SyncWorkers
	if workers <= 0 {
		workers = 5
	}

	return &Scanner{
		movers:   movers,
		quotes:   quotes,
		shortInt: shortInt,
		logger:   log.WithField("module", "scan"),
		limit:    limit,
		workers:  workers,
	}
}

// TopMovers builds today's gainer list, provider order preserved. On
// provider failure the result is empty with IsLive false; the error is
// returned alongside for logging.
func (s *Scanner) TopMovers(ctx context.Context) (*contracts.ScanResult[contracts.Mover], error) {
	rows, err := s.movers.TopGainers(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Top gainers fetch failed")
		return &contracts.ScanResult[contracts.Mover]{Candidates: []contracts.Mover{}, IsLive: false}, err
	}

	if len(rows) > s.limit {
		rows = rows[:s.limit]
	}

	liveQuotes := s.syncQuotes(ctx, tickersOf(rows))

	candidates := make([]contracts.Mover, 0, len(rows))
	for _, row := range rows {
		mover := row
		if q, ok := liveQuotes[row.Ticker]; ok {
			mover.Price = q.Price
			mover.ChangePercent = q.ChangePercent
		}
		if mover.Catalyst == "" {
			mover.Catalyst = "Significant relative volume spike."
		}
		candidates = append(candidates, mover)
	}

	s.logger.WithField("count", len(candidates)).Info("Assembled top movers scan")

	return &contracts.ScanResult[contracts.Mover]{Candidates: candidates, IsLive: true}, nil
}

// SqueezeCandidates builds the squeeze list from the most-active feed.
// Short interest comes from the scraper when it covers a symbol,
// otherwise from a volume-rank heuristic flagged as estimated. Days to
// cover has no feed at all and is always an estimate, so IsLive is
// false whenever any candidate carries an estimate.
func (s *Scanner) SqueezeCandidates(ctx context.Context) (*contracts.ScanResult[contracts.SqueezeCandidate], error) {
	rows, err := s.movers.MostActive(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Most active fetch failed")
		return &contracts.ScanResult[contracts.SqueezeCandidate]{Candidates: []contracts.SqueezeCandidate{}, IsLive: false}, err
	}

	if len(rows) > s.limit {
		rows = rows[:s.limit]
	}

	sourcedShortInt := s.fetchShortInterest(ctx)
	liveQuotes := s.syncQuotes(ctx, tickersOf(rows))

	candidates := make([]contracts.SqueezeCandidate, 0, len(rows))
	for rank, row := range rows {
		price := row.Price
		change := row.ChangePercent
		if q, ok := liveQuotes[row.Ticker]; ok {
			price = q.Price
			change = q.ChangePercent
		}

		shortPct := estimatedShortInterest(rank, len(rows))
		rationale := "Short interest estimated from relative volume rank."
		if pct, ok := sourcedShortInt[row.Ticker]; ok {
			shortPct = contracts.Sourced(pct)
			rationale = "Published short interest with abnormal volume."
		}

		candidates = append(candidates, contracts.SqueezeCandidate{
			Ticker:           row.Ticker,
			CompanyName:      row.CompanyName,
			Price:            price,
			Volume:           row.Volume,
			ShortInterestPct: shortPct,
			DaysToCover:      estimatedDaysToCover(rank),
			SqueezeScore:     squeezeScore(shortPct.Value, change),
			Rationale:        rationale,
		})
	}

	isLive := true
	for i := range candidates {
		if candidates[i].HasEstimates() {
			isLive = false
			break
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"count":   len(candidates),
		"is_live": isLive,
	}).Info("Assembled squeeze scan")

	return &contracts.ScanResult[contracts.SqueezeCandidate]{Candidates: candidates, IsLive: isLive}, nil
}

// fetchShortInterest is best-effort; any failure means no coverage.
func (s *Scanner) fetchShortInterest(ctx context.Context) map[string]float64 {
	if s.shortInt == nil {
		return nil
	}

	data, err := s.shortInt.ShortInterest(ctx)
	if err != nil {
		s.logger.WithError(err).Debug("Short interest fetch failed, falling back to estimates")
		return nil
	}
	return data
}

// syncQuotes refreshes prices for a ticker batch. Concurrency is
// capped at s.workers to respect upstream rate limits; the cap is a
// hard invariant, not a tuning knob. Individual failures leave the
// provider-supplied value in place.
func (s *Scanner) syncQuotes(ctx context.Context, tickers []string) map[string]*contracts.Quote {
	results := make(map[string]*contracts.Quote, len(tickers))
	var mu sync.Mutex

	tickerCh := make(chan string, len(tickers))
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ticker := range tickerCh {
				quote, err := s.quotes.Quote(ctx, ticker)
				if err != nil {
					s.logger.WithError(err).WithField("ticker", ticker).Debug("Live quote sync failed")
					continue
				}
				mu.Lock()
				results[ticker] = quote
				mu.Unlock()
			}
		}()
	}

	for _, ticker := range tickers {
		tickerCh <- ticker
	}
	close(tickerCh)
	wg.Wait()

	return results
}

func tickersOf(rows []contracts.Mover) []string {
	tickers := make([]string, len(rows))
	for i, row := range rows {
		tickers[i] = row.Ticker
	}
	return tickers
}

// estimatedShortInterest maps volume rank (0 = most active) into a
// plausible short-interest band. An estimate, never a sourced fact.
func estimatedShortInterest(rank, total int) contracts.Metric {
	if total <= 1 {
		return contracts.Estimated(15)
	}
	// 25% for the most active symbol, tapering toward 10%.
	pct := 25 - 15*float64(rank)/float64(total-1)
	return contracts.Estimated(pct)
}

// estimatedDaysToCover has no provider feed; purely rank-derived.
func estimatedDaysToCover(rank int) contracts.Metric {
	return contracts.Estimated(1.5 + 0.5*float64(rank))
}

// squeezeScore combines short interest with day momentum into a 0-100
// score. Derived from at least one estimated input in practice, so it
// is flagged estimated.
func squeezeScore(shortPct, changePercent float64) contracts.Metric {
	score := shortPct*2 + math.Abs(changePercent)*3
	if score > 100 {
		score = 100
	}
	return contracts.Estimated(score)
}
