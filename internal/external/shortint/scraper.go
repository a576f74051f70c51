// Package shortint scrapes published short-interest tables. It is the
// sourced counterpart to the squeeze scan's heuristic estimates: when
// a symbol appears here its short-interest figure is provider-sourced,
// otherwise the scan falls back to an estimate and flags it.
package shortint

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tickerpulse/backend/internal/contracts"
	"github.com/tickerpulse/backend/pkg/httputil"
	"github.com/tickerpulse/backend/pkg/logger"
	"github.com/tickerpulse/backend/pkg/numutil"
)

// tickerPattern matches plausible US equity symbols in table cells.
var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// Scraper pulls short-interest percentages from an HTML table source.
type Scraper struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewScraper creates a new short-interest scraper.
func NewScraper(baseURL string, httpClient *httputil.Client, log *logger.Logger) *Scraper {
	return &Scraper{
		httpClient: httpClient,
		logger:     log.WithField("provider", "shortint"),
		baseURL:    baseURL,
	}
}

// ShortInterest fetches and parses the short-interest table, keyed by
// ticker. Best-effort: callers treat any error as "no coverage".
func (s *Scraper) ShortInterest(ctx context.Context) (map[string]float64, error) {
	resp, err := s.httpClient.Get(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("short interest: %w: %v", contracts.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("short interest: %w: status %d", contracts.ErrProviderUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("short interest: parse HTML: %w", err)
	}

	result := parseTable(doc)
	if len(result) == 0 {
		return nil, fmt.Errorf("short interest: %w: no rows parsed", contracts.ErrMalformedPayload)
	}

	s.logger.WithField("symbols", len(result)).Debug("Scraped short interest table")
	return result, nil
}

// parseTable walks every table row and keeps rows that look like
// (ticker, ..., "NN.N%", ...). The site carries no stable ids or
// classes, so shape matching beats selector matching here.
func parseTable(doc *goquery.Document) map[string]float64 {
	result := make(map[string]float64)

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		ticker := strings.TrimSpace(cells.Eq(0).Text())
		if !tickerPattern.MatchString(ticker) {
			return
		}

		pctText := strings.TrimSpace(cells.Eq(3).Text())
		if !strings.HasSuffix(pctText, "%") {
			return
		}

		pct := numutil.Coerce(pctText)
		if pct <= 0 || pct > 100 {
			return
		}

		result[ticker] = pct
	})

	return result
}
