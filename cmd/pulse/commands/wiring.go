package commands

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/tickerpulse/backend/internal/external/alphavantage"
	"github.com/tickerpulse/backend/internal/external/finnhub"
	"github.com/tickerpulse/backend/internal/external/gemini"
	"github.com/tickerpulse/backend/internal/external/shortint"
	"github.com/tickerpulse/backend/internal/report"
	"github.com/tickerpulse/backend/internal/scan"
	"github.com/tickerpulse/backend/pkg/config"
	"github.com/tickerpulse/backend/pkg/httputil"
	"github.com/tickerpulse/backend/pkg/logger"
)

// services bundles the wired provider clients and assemblers shared by
// the CLI commands.
type services struct {
	finnhub   *finnhub.Client
	assembler *report.Assembler
	scanner   *scan.Scanner
}

// buildServices wires provider clients into the report assembler and
// market scanner. The narrative path is optional and only wired when a
// Gemini API key is configured.
func buildServices(cfg *config.Config, log *logger.Logger) *services {
	finnhubClient := finnhub.NewClient(
		cfg.Finnhub,
		httputil.NewWithTimeout(log, cfg.Finnhub.Timeout),
		log,
	)

	// Alpha Vantage free tier allows 5 requests per minute; pace the
	// shared client instead of relying on 429 responses.
	alphaHTTP := httputil.NewWithTimeout(log, cfg.AlphaVantage.Timeout).
		WithRateLimiter(rate.NewLimiter(rate.Every(12*time.Second), 2))
	alphaClient := alphavantage.NewClient(cfg.AlphaVantage, alphaHTTP, log)

	var narrative *gemini.Client
	if cfg.Gemini.APIKey != "" {
		narrative = gemini.NewClient(
			cfg.Gemini,
			httputil.NewWithTimeout(log, cfg.Gemini.Timeout),
			log,
		)
	}

	scraper := shortint.NewScraper(
		cfg.Scan.ShortIntURL,
		httputil.New(log),
		log,
	)

	var assembler *report.Assembler
	if narrative != nil {
		assembler = report.NewAssembler(finnhubClient, alphaClient, finnhubClient, narrative, log)
	} else {
		assembler = report.NewAssembler(finnhubClient, alphaClient, finnhubClient, nil, log)
	}

	scanner := scan.NewScanner(alphaClient, finnhubClient, scraper, cfg.Scan, log)

	return &services{
		finnhub:   finnhubClient,
		assembler: assembler,
		scanner:   scanner,
	}
}
