package alphavantage

import (
	"context"
	"errors"
	"fmt"
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

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
	httpClient := httputil.New(log).DisableRetry()

	return NewClient(config.AlphaVantageConfig{APIKey: "test-key", BaseURL: srv.URL}, httpClient, log)
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func TestDailyHistoryAscendingOrder(t *testing.T) {
	// Provider delivers most-recent-first; the adapter must return ascending.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TIME_SERIES_DAILY", r.URL.Query().Get("function"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		writeJSON(w, `{
			"Meta Data": {"2. Symbol": "AAPL"},
			"Time Series (Daily)": {
				"2026-08-28": {"1. open": "229.0", "4. close": "230.10"},
				"2026-08-26": {"1. open": "227.0", "4. close": "228.40"},
				"2026-08-27": {"1. open": "228.0", "4. close": "229.00"}
			}
		}`)
	})

	series, err := client.DailyHistory(context.Background(), "aapl")
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, "2026-08-26", series[0].Date)
	assert.Equal(t, 228.40, series[0].Close)
	assert.Equal(t, "2026-08-28", series[2].Date)
	assert.Equal(t, 230.10, series[2].Close)
}

func TestDailyHistoryCapsAtThirtyDays(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := `{"Time Series (Daily)": {`
		for i := 1; i <= 45; i++ {
			if i > 1 {
				body += ","
			}
			body += fmt.Sprintf(`"2026-07-%02d": {"4. close": "%d.0"}`, i%31+1, 100+i)
		}
		body += `}}`
		writeJSON(w, body)
	})

	series, err := client.DailyHistory(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(series), 30)

	// Still ascending after the cap.
	for i := 1; i < len(series); i++ {
		assert.Less(t, series[i-1].Date, series[i].Date)
	}
}

func TestDailyHistoryMalformedPayloadYieldsEmptySeries(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing time series key", `{"Meta Data": {}}`},
		{"wrong-typed time series", `{"Time Series (Daily)": []}`},
		{"non-numeric closes", `{"Time Series (Daily)": {"2026-08-28": {"4. close": "n/a"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.body)
			})

			series, err := client.DailyHistory(context.Background(), "AAPL")
			require.NoError(t, err, "malformed payloads degrade to an empty series")
			assert.Empty(t, series)
		})
	}
}

func TestDailyHistoryRateLimitNotice(t *testing.T) {
	// Limit notices arrive embedded in a 200 body and must be failures.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`)
	})

	_, err := client.DailyHistory(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrRateLimited))
}

func TestDailyHistoryProviderDown(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.DailyHistory(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrProviderUnavailable))
}

func TestTopGainers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TOP_GAINERS_LOSERS", r.URL.Query().Get("function"))
		writeJSON(w, `{
			"top_gainers": [
				{"ticker": "ABCD", "price": "12.34", "change_percentage": "32.1%", "volume": "1500000"},
				{"ticker": "efgh", "price": "$7.50", "change_percentage": "18.4%", "volume": "2,000,000"}
			],
			"most_actively_traded": [
				{"ticker": "NVDA", "price": "181.2", "change_percentage": "2.1%", "volume": "9000000"}
			]
		}`)
	})

	movers, err := client.TopGainers(context.Background())
	require.NoError(t, err)
	require.Len(t, movers, 2)

	assert.Equal(t, "ABCD", movers[0].Ticker)
	assert.Equal(t, 12.34, movers[0].Price)
	assert.Equal(t, 32.1, movers[0].ChangePercent)
	assert.Equal(t, int64(1500000), movers[0].Volume)

	// Coercion handles currency symbols and separators.
	assert.Equal(t, "EFGH", movers[1].Ticker)
	assert.Equal(t, 7.5, movers[1].Price)
	assert.Equal(t, int64(2000000), movers[1].Volume)
}

func TestMostActive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"top_gainers": [],
			"most_actively_traded": [
				{"ticker": "TSLA", "price": "240.5", "change_percentage": "-1.2%", "volume": "80000000"}
			]
		}`)
	})

	movers, err := client.MostActive(context.Background())
	require.NoError(t, err)
	require.Len(t, movers, 1)
	assert.Equal(t, "TSLA", movers[0].Ticker)
	assert.Equal(t, -1.2, movers[0].ChangePercent)
}

func TestTopGainersRateLimitNotice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"Information": "API rate limit reached"}`)
	})

	_, err := client.TopGainers(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrRateLimited))
}
