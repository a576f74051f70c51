// Package gemini is the optional narrative provider adapter. It asks a
// generative model for a short news/sentiment block as strict JSON.
// Every failure mode here is recoverable: callers fall back to static
// placeholder text and report assembly never aborts on this path.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tickerpulse/backend/internal/contracts"
	"github.com/tickerpulse/backend/pkg/config"
	"github.com/tickerpulse/backend/pkg/httputil"
	"github.com/tickerpulse/backend/pkg/logger"
)

const systemInstruction = "You are an equity research assistant. " +
	"Return valid JSON only with keys sentiment, narrative_summary, catalyst_risk. " +
	"sentiment is one of positive, neutral, negative; catalyst_risk is one of low, medium, high. " +
	"No markdown. No commentary."

// Client handles communication with the Gemini generateContent API.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiKey     string
	model      string
	baseURL    string
}

// NewClient creates a new Gemini client.
func NewClient(cfg config.GeminiConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("provider", "gemini"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Narrative asks the model for a news analysis block grounded on the
// quote data already in hand. The raw model text is parsed as JSON;
// any shape surprise is an error the caller absorbs.
func (c *Client) Narrative(ctx context.Context, ticker string, quote *contracts.Quote) (*contracts.NarrativeResult, error) {
	prompt := fmt.Sprintf(
		"Summarize the current news flow and sentiment for %s. Known data: price %.2f, day change %.2f%%.",
		ticker, quote.Price, quote.ChangePercent,
	)

	reqBody := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig:  generationConfig{ResponseMimeType: "application/json"},
	}

	fullURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	resp, err := c.httpClient.PostJSON(ctx, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("narrative %s: %w: %v", ticker, contracts.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("narrative %s: %w", ticker, contracts.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("narrative %s: %w: status %d", ticker, contracts.ErrProviderUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("narrative %s: read body: %w", ticker, err)
	}

	var payload generateResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("narrative %s: %w: %v", ticker, contracts.ErrMalformedPayload, err)
	}

	text := extractText(&payload)
	if text == "" {
		return nil, fmt.Errorf("narrative %s: %w: empty candidate text", ticker, contracts.ErrMalformedPayload)
	}

	// The model is told to emit strict JSON; decode to a map so the
	// assembler can probe whatever extra keys it chose to include.
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("narrative %s: %w: model text is not JSON", ticker, contracts.ErrMalformedPayload)
	}

	c.logger.WithField("ticker", ticker).Debug("Fetched narrative")

	return &contracts.NarrativeResult{
		News: contracts.NewsAnalysis{
			Sentiment:    stringField(raw, "sentiment"),
			Narrative:    stringField(raw, "narrative_summary"),
			CatalystRisk: stringField(raw, "catalyst_risk"),
		},
		Payload: raw,
	}, nil
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func extractText(resp *generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}
