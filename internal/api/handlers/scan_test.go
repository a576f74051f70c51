package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerpulse/backend/internal/contracts"
)

type fakeScanner struct {
	movers  *contracts.ScanResult[contracts.Mover]
	squeeze *contracts.ScanResult[contracts.SqueezeCandidate]
	err     error
}

func (f *fakeScanner) TopMovers(ctx context.Context) (*contracts.ScanResult[contracts.Mover], error) {
	return f.movers, f.err
}

func (f *fakeScanner) SqueezeCandidates(ctx context.Context) (*contracts.ScanResult[contracts.SqueezeCandidate], error) {
	return f.squeeze, f.err
}

func TestGetTopMoversOK(t *testing.T) {
	h := NewScanHandler(&fakeScanner{movers: &contracts.ScanResult[contracts.Mover]{
		Candidates: []contracts.Mover{{Ticker: "NVDA", Price: 132.1, ChangePercent: 6.4}},
		IsLive:     true,
	}}, handlerLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/scan/movers", nil)
	rec := httptest.NewRecorder()
	h.GetTopMovers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data   []contracts.Mover `json:"data"`
		IsLive bool              `json:"isLive"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "NVDA", body.Data[0].Ticker)
	assert.True(t, body.IsLive)
}

func TestGetTopMoversDegradedStillServes(t *testing.T) {
	h := NewScanHandler(&fakeScanner{
		movers: &contracts.ScanResult[contracts.Mover]{Candidates: []contracts.Mover{}, IsLive: false},
		err:    contracts.ErrRateLimited,
	}, handlerLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/scan/movers", nil)
	rec := httptest.NewRecorder()
	h.GetTopMovers(rec, req)

	// Degraded scans are still 200 with an honest isLive flag, never an
	// error page the frontend has to special-case.
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data   []contracts.Mover `json:"data"`
		IsLive bool              `json:"isLive"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Data)
	assert.False(t, body.IsLive)
}

func TestGetSqueezeCandidatesOK(t *testing.T) {
	h := NewScanHandler(&fakeScanner{squeeze: &contracts.ScanResult[contracts.SqueezeCandidate]{
		Candidates: []contracts.SqueezeCandidate{{
			Ticker:           "GME",
			ShortInterestPct: contracts.Sourced(24.2),
			DaysToCover:      contracts.Estimated(2.5),
			SqueezeScore:     contracts.Estimated(61.0),
		}},
		IsLive: false,
	}}, handlerLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/scan/squeeze", nil)
	rec := httptest.NewRecorder()
	h.GetSqueezeCandidates(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data   []contracts.SqueezeCandidate `json:"data"`
		IsLive bool                         `json:"isLive"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.False(t, body.Data[0].ShortInterestPct.Estimated)
	assert.True(t, body.Data[0].DaysToCover.Estimated)
	assert.False(t, body.IsLive, "estimated metrics must pin isLive false")
}
