// Package alphavantage is the secondary provider adapter: daily close
// history and the bulk top-gainers / most-active lists.
//
// Alpha Vantage embeds rate-limit notices ("Note", "Information") in
// otherwise-200 JSON bodies; those are detected and classified as
// failures, never as valid empty data.
package alphavantage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/tickerpulse/backend/internal/contracts"
	"github.com/tickerpulse/backend/pkg/config"
	"github.com/tickerpulse/backend/pkg/httputil"
	"github.com/tickerpulse/backend/pkg/logger"
	"github.com/tickerpulse/backend/pkg/numutil"
)

// historyDays bounds the returned series to the most recent trading days.
const historyDays = 30

// Client handles communication with the Alpha Vantage API.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiKey     string
	baseURL    string
}

// NewClient creates a new Alpha Vantage client.
func NewClient(cfg config.AlphaVantageConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("provider", "alphavantage"),
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

// DailyHistory fetches the daily close series for a ticker, reordered
// to chronological ascending and capped at historyDays points.
//
// A malformed payload (missing time-series key, non-numeric closes)
// yields an empty series and a nil error: downstream treats an empty
// series as "indicators unavailable", not as a failure. Rate-limit
// notices and transport errors are real failures.
func (c *Client) DailyHistory(ctx context.Context, ticker string) (contracts.PriceSeries, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if symbol == "" {
		return nil, fmt.Errorf("daily history: empty ticker")
	}

	fullURL := fmt.Sprintf("%s/query?function=TIME_SERIES_DAILY&symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(symbol), c.apiKey)

	var payload map[string]interface{}
	if err := c.getJSON(ctx, fullURL, &payload); err != nil {
		return nil, fmt.Errorf("daily history %s: %w", symbol, err)
	}

	if err := checkRateLimitNotice(payload); err != nil {
		return nil, fmt.Errorf("daily history %s: %w", symbol, err)
	}

	series := parseTimeSeries(payload)

	c.logger.WithFields(map[string]interface{}{
		"ticker": symbol,
		"points": len(series),
	}).Debug("Fetched daily history")

	return series, nil
}

// parseTimeSeries extracts and orders the close series. Any shape
// surprise degrades to fewer (or zero) points rather than an error.
func parseTimeSeries(payload map[string]interface{}) contracts.PriceSeries {
	raw, ok := payload["Time Series (Daily)"].(map[string]interface{})
	if !ok {
		return contracts.PriceSeries{}
	}

	// Most recent first, so the cap keeps the newest days.
	dates := make([]string, 0, len(raw))
	for date := range raw {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > historyDays {
		dates = dates[:historyDays]
	}

	series := make(contracts.PriceSeries, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, date := range dates {
		if seen[date] {
			continue
		}

		record, ok := raw[date].(map[string]interface{})
		if !ok {
			continue
		}

		closePrice := numutil.Coerce(record["4. close"])
		if closePrice <= 0 {
			continue
		}

		seen[date] = true
		series = append(series, contracts.PricePoint{Date: date, Close: closePrice})
	}

	// Callers must never receive descending order.
	series.SortAscending()
	return series
}

// moverRow mirrors one entry of the TOP_GAINERS_LOSERS payload. All
// numeric fields arrive as strings ("3.25", "32.34%", "1500000").
type moverRow struct {
	Ticker           string `json:"ticker"`
	Price            string `json:"price"`
	ChangeAmount     string `json:"change_amount"`
	ChangePercentage string `json:"change_percentage"`
	Volume           string `json:"volume"`
}

type topGainersResponse struct {
	Note        string     `json:"Note"`
	Information string     `json:"Information"`
	TopGainers  []moverRow `json:"top_gainers"`
	MostActive  []moverRow `json:"most_actively_traded"`
}

// TopGainers fetches today's top gainer list in provider order.
func (c *Client) TopGainers(ctx context.Context) ([]contracts.Mover, error) {
	payload, err := c.fetchGainersLosers(ctx)
	if err != nil {
		return nil, fmt.Errorf("top gainers: %w", err)
	}
	return convertMovers(payload.TopGainers), nil
}

// MostActive fetches today's most-actively-traded list in provider order.
func (c *Client) MostActive(ctx context.Context) ([]contracts.Mover, error) {
	payload, err := c.fetchGainersLosers(ctx)
	if err != nil {
		return nil, fmt.Errorf("most active: %w", err)
	}
	return convertMovers(payload.MostActive), nil
}

func (c *Client) fetchGainersLosers(ctx context.Context) (*topGainersResponse, error) {
	fullURL := fmt.Sprintf("%s/query?function=TOP_GAINERS_LOSERS&apikey=%s", c.baseURL, c.apiKey)

	var payload topGainersResponse
	if err := c.getJSON(ctx, fullURL, &payload); err != nil {
		return nil, err
	}

	if payload.Note != "" || payload.Information != "" {
		return nil, contracts.ErrRateLimited
	}

	return &payload, nil
}

func convertMovers(rows []moverRow) []contracts.Mover {
	movers := make([]contracts.Mover, 0, len(rows))
	for _, row := range rows {
		ticker := strings.ToUpper(strings.TrimSpace(row.Ticker))
		if ticker == "" {
			continue
		}
		movers = append(movers, contracts.Mover{
			Ticker:        ticker,
			CompanyName:   ticker, // feed carries no company names
			Price:         numutil.Coerce(row.Price),
			ChangePercent: numutil.Coerce(row.ChangePercentage),
			Volume:        numutil.CoerceInt64(row.Volume),
		})
	}
	return movers
}

// checkRateLimitNotice detects the limit notice embedded in a 200 body.
func checkRateLimitNotice(payload map[string]interface{}) error {
	if _, ok := payload["Note"]; ok {
		return contracts.ErrRateLimited
	}
	if _, ok := payload["Information"]; ok {
		return contracts.ErrRateLimited
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, fullURL string, out interface{}) error {
	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return fmt.Errorf("%w: %v", contracts.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return contracts.ErrRateLimited
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", contracts.ErrProviderUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: status %d", contracts.ErrMalformedPayload, resp.StatusCode)
	}

	if err := decodeJSONBody(resp, out); err != nil {
		return fmt.Errorf("%w: %v", contracts.ErrMalformedPayload, err)
	}

	return nil
}
