// Package finnhub is the primary real-time provider adapter: current
// quotes and related-symbol lookups.
package finnhub

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tickerpulse/backend/internal/contracts"
	"github.com/tickerpulse/backend/pkg/config"
	"github.com/tickerpulse/backend/pkg/httputil"
	"github.com/tickerpulse/backend/pkg/logger"
)

// maxPeers caps the related-ticker list returned by Peers.
const maxPeers = 6

// Client handles communication with the Finnhub API.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiKey     string
	baseURL    string
}

// NewClient creates a new Finnhub client.
func NewClient(cfg config.FinnhubConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("provider", "finnhub"),
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

// quoteResponse mirrors the Finnhub /quote payload.
type quoteResponse struct {
	Current       float64 `json:"c"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	PrevClose     float64 `json:"pc"`
}

// Quote fetches the current quote for a ticker.
// A payload with a zero current price is how Finnhub reports unknown
// tickers, so that case maps to ErrNotFound rather than a $0 quote.
func (c *Client) Quote(ctx context.Context, ticker string) (*contracts.Quote, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if symbol == "" {
		return nil, fmt.Errorf("quote: empty ticker")
	}

	fullURL := fmt.Sprintf("%s/quote?symbol=%s&token=%s", c.baseURL, url.QueryEscape(symbol), c.apiKey)

	var payload quoteResponse
	if err := c.getJSON(ctx, fullURL, &payload); err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}

	if payload.Current == 0 {
		return nil, fmt.Errorf("quote %s: %w", symbol, contracts.ErrNotFound)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": symbol,
		"price":  payload.Current,
	}).Debug("Fetched quote")

	return &contracts.Quote{
		Ticker:        symbol,
		Price:         payload.Current,
		ChangePercent: payload.ChangePercent,
		SessionHigh:   payload.High,
		SessionLow:    payload.Low,
	}, nil
}

// Peers fetches related tickers for a symbol, excluding the symbol
// itself and truncated to maxPeers. Best-effort for callers: they
// treat any error as an empty set.
func (c *Client) Peers(ctx context.Context, ticker string) ([]string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if symbol == "" {
		return nil, fmt.Errorf("peers: empty ticker")
	}

	fullURL := fmt.Sprintf("%s/peers?symbol=%s&token=%s", c.baseURL, url.QueryEscape(symbol), c.apiKey)

	var payload []string
	if err := c.getJSON(ctx, fullURL, &payload); err != nil {
		return nil, fmt.Errorf("peers %s: %w", symbol, err)
	}

	peers := make([]string, 0, maxPeers)
	for _, p := range payload {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" || p == symbol {
			continue
		}
		peers = append(peers, p)
		if len(peers) == maxPeers {
			break
		}
	}

	return peers, nil
}

// getJSON wraps the shared client with Finnhub failure classification.
func (c *Client) getJSON(ctx context.Context, fullURL string, out interface{}) error {
	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return fmt.Errorf("%w: %v", contracts.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return contracts.ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return contracts.ErrNotFound
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
