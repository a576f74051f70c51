package finnhub

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerpulse/backend/internal/contracts"
	"github.com/tickerpulse/backend/pkg/config"
	"github.com/tickerpulse/backend/pkg/httputil"
	"github.com/tickerpulse/backend/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
	httpClient := httputil.New(log).DisableRetry()

	client := NewClient(config.FinnhubConfig{APIKey: "test-key", BaseURL: srv.URL}, httpClient, log)
	return client, srv
}

func TestQuote(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.URL.Query().Get("token"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"c":227.5,"dp":1.2,"h":229.8,"l":225.1,"pc":224.8}`))
	})

	quote, err := client.Quote(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote.Ticker)
	assert.Equal(t, 227.5, quote.Price)
	assert.Equal(t, 1.2, quote.ChangePercent)
	assert.Equal(t, 229.8, quote.SessionHigh)
	assert.Equal(t, 225.1, quote.SessionLow)
}

func TestQuoteUnknownTicker(t *testing.T) {
	// Finnhub reports unknown tickers as an all-zero payload.
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"c":0,"dp":0,"h":0,"l":0,"pc":0}`))
	})

	_, err := client.Quote(context.Background(), "ZZZZ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrNotFound))
	assert.Contains(t, err.Error(), "ZZZZ")
}

func TestQuoteRateLimited(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Quote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrRateLimited))
}

func TestQuoteServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Quote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrProviderUnavailable))
}

func TestQuoteHTMLErrorPage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>maintenance</html>"))
	})

	_, err := client.Quote(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrMalformedPayload))
}

func TestQuoteEmptyTicker(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty ticker")
	})

	_, err := client.Quote(context.Background(), "   ")
	assert.Error(t, err)
}

func TestPeers(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/peers", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["AAPL","MSFT","GOOGL","AMZN","META","NVDA","TSLA","ORCL"]`))
	})

	peers, err := client.Peers(context.Background(), "AAPL")
	require.NoError(t, err)

	// Queried symbol excluded, list capped at 6.
	assert.Len(t, peers, 6)
	assert.NotContains(t, peers, "AAPL")
	assert.Equal(t, "MSFT", peers[0])
}

func TestPeersFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Peers(context.Background(), "AAPL")
	assert.Error(t, err)
}
