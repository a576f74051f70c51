package gemini

import (
	"context"
	"encoding/json"
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

	return NewClient(config.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		BaseURL: srv.URL,
	}, httpClient, log)
}

func TestNarrative(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-2.0-flash")

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req, "contents")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{
				"content": {"parts": [{"text": "{\"sentiment\":\"positive\",\"narrative_summary\":\"Strong earnings momentum.\",\"catalyst_risk\":\"low\"}"}]}
			}]
		}`))
	})

	result, err := client.Narrative(context.Background(), "AAPL", &contracts.Quote{Price: 227.5, ChangePercent: 1.2})
	require.NoError(t, err)

	assert.Equal(t, "positive", result.News.Sentiment)
	assert.Equal(t, "Strong earnings momentum.", result.News.Narrative)
	assert.Equal(t, "low", result.News.CatalystRisk)
	assert.Contains(t, result.Payload, "sentiment")
}

func TestNarrativeNonJSONModelText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "Sorry, I cannot help with that."}]}}]}`))
	})

	_, err := client.Narrative(context.Background(), "AAPL", &contracts.Quote{Price: 227.5})
	assert.Error(t, err)
}

func TestNarrativeEmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": []}`))
	})

	_, err := client.Narrative(context.Background(), "AAPL", &contracts.Quote{Price: 227.5})
	assert.Error(t, err)
}

func TestNarrativeServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Narrative(context.Background(), "AAPL", &contracts.Quote{Price: 227.5})
	assert.Error(t, err)
}
