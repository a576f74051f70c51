// Package report assembles the canonical analyst report for a ticker.
// It is the single public entry point over the provider adapters: it
// fetches quote, history, and peers concurrently, tolerates every
// optional-path failure, and guarantees a fully populated report or a
// single explained error.
package report

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tickerpulse/backend/internal/contracts"
	"github.com/tickerpulse/backend/internal/indicators"
	"github.com/tickerpulse/backend/internal/verdict"
	"github.com/tickerpulse/backend/pkg/logger"
)

// fetchTimeout bounds each upstream call. A timed-out call is treated
// like a failed one: fatal for the quote, degrading for the rest.
const fetchTimeout = 15 * time.Second

// highRiskChangePct is the absolute day change above which the
// summary flags elevated risk.
const highRiskChangePct = 4.0

// Assembler orchestrates the provider adapters into analyst reports.
// Stateless: every BuildReport invocation is independent.
type Assembler struct {
	quotes    contracts.QuoteProvider
	history   contracts.HistoryProvider
	peers     contracts.PeerProvider
	narrative contracts.NarrativeProvider // nil when not configured
	logger    *logger.Logger
}

// NewAssembler creates a report assembler. narrative may be nil.
func NewAssembler(
	quotes contracts.QuoteProvider,
	history contracts.HistoryProvider,
	peers contracts.PeerProvider,
	narrative contracts.NarrativeProvider,
	log *logger.Logger,
) *Assembler {
	return &Assembler{
		quotes:    quotes,
		history:   history,
		peers:     peers,
		narrative: narrative,
		logger:    log.WithField("module", "report"),
	}
}

type quoteResult struct {
	quote *contracts.Quote
	err   error
}

type historyResult struct {
	series contracts.PriceSeries
	err    error
}

type peersResult struct {
	peers []string
	err   error
}

// BuildReport builds the canonical analyst report for a ticker.
//
// The quote path is mandatory: if it fails, no report is produced.
// History and peer failures degrade the report (documented defaults
// plus a confidence note) instead of failing it.
func (a *Assembler) BuildReport(ctx context.Context, ticker string) (*contracts.AnalystReport, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if symbol == "" {
		return nil, fmt.Errorf("analyst report: empty ticker")
	}

	// The three fetches are independent; issue them concurrently so
	// total latency is bounded by the slowest call, not the sum. They
	// may complete in any order.
	quoteCh := make(chan quoteResult, 1)
	historyCh := make(chan historyResult, 1)
	peersCh := make(chan peersResult, 1)

	go func() {
		fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		q, err := a.quotes.Quote(fetchCtx, symbol)
		quoteCh <- quoteResult{quote: q, err: err}
	}()

	go func() {
		fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		s, err := a.history.DailyHistory(fetchCtx, symbol)
		historyCh <- historyResult{series: s, err: err}
	}()

	go func() {
		fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		p, err := a.peers.Peers(fetchCtx, symbol)
		peersCh <- peersResult{peers: p, err: err}
	}()

	qr := <-quoteCh
	hr := <-historyCh
	pr := <-peersCh

	if qr.err != nil {
		return nil, fmt.Errorf("analyst report for %s: %w", symbol, qr.err)
	}
	quote := qr.quote

	var notes []string

	history := hr.series
	if hr.err != nil {
		a.logger.WithError(hr.err).WithField("ticker", symbol).Warn("History fetch failed, degrading report")
		history = contracts.PriceSeries{}
		notes = append(notes, "Historical data unavailable; technical indicators at neutral defaults.")
	} else if len(history) == 0 {
		notes = append(notes, "Provider returned no usable history; technical indicators at neutral defaults.")
	}

	var related []string
	if pr.err != nil {
		a.logger.WithError(pr.err).WithField("ticker", symbol).Debug("Peer fetch failed")
	} else {
		related = pr.peers
	}

	ind := indicators.Compute(history)
	verdicts := verdict.Synthesize(ind, quote)

	news, auxPayload, narrativeNote := a.fetchNarrative(ctx, symbol, quote)
	if narrativeNote != "" {
		notes = append(notes, narrativeNote)
	}

	if len(history) > 0 {
		notes = append(notes,
			fmt.Sprintf("RSI(14) calculated at %.1f.", ind.RSI14),
			fmt.Sprintf("%d-day trend identified as %s.", len(history), ind.Trend),
		)
	}

	// Live quote price is authoritative when non-zero; otherwise probe
	// the auxiliary payload for an alternate price key. 0 means
	// "pending" and must never render as a real $0.00.
	price := quote.Price
	if price == 0 {
		price = FindPrice(auxPayload)
		if price == 0 {
			notes = append(notes, "No price source resolved; price is pending.")
		}
	}

	rpt := &contracts.AnalystReport{
		Ticker:          symbol,
		Price:           price,
		ChangePercent:   quote.ChangePercent,
		Summary:         buildSummary(symbol, price, quote.ChangePercent, ind),
		Verdicts:        verdicts,
		News:            news,
		History:         history,
		ConfidenceNotes: notes,
		RelatedTickers:  related,
	}

	sanitize(rpt, symbol)

	a.logger.WithFields(map[string]interface{}{
		"ticker":  symbol,
		"price":   rpt.Price,
		"rsi":     ind.RSI14,
		"trend":   ind.Trend,
		"history": len(rpt.History),
	}).Info("Assembled analyst report")

	return rpt, nil
}

// fetchNarrative runs the optional narrative path. Never fatal: any
// failure yields placeholder text plus a disclosure note.
func (a *Assembler) fetchNarrative(ctx context.Context, symbol string, quote *contracts.Quote) (contracts.NewsAnalysis, map[string]interface{}, string) {
	if a.narrative == nil {
		return contracts.NewsAnalysis{}, nil, ""
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	result, err := a.narrative.Narrative(fetchCtx, symbol, quote)
	if err != nil {
		a.logger.WithError(err).WithField("ticker", symbol).Warn("Narrative fetch failed, using placeholders")
		return contracts.NewsAnalysis{}, nil, "Narrative source unavailable; news analysis uses placeholder text."
	}

	return result.News, result.Payload, ""
}

func buildSummary(symbol string, price, changePercent float64, ind contracts.Indicators) contracts.Summary {
	sign := ""
	if changePercent >= 0 {
		sign = "+"
	}

	risk := "medium"
	if math.Abs(changePercent) > highRiskChangePct {
		risk = "high"
	}

	return contracts.Summary{
		OneLiner:   fmt.Sprintf("%s is $%.2f (%s%.2f%%). RSI: %.0f.", symbol, price, sign, changePercent, ind.RSI14),
		MarketMood: string(ind.Trend),
		RiskLevel:  risk,
	}
}
