package indicators

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tickerpulse/backend/internal/contracts"
)

func TestRSIShortSeriesIsNeutral(t *testing.T) {
	// Any series with fewer than 14 points returns exactly 50.
	for n := 0; n < 14; n++ {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		assert.Equal(t, 50.0, RSI(closes), "len=%d", n)
	}
}

func TestRSIAllGainsIsHundred(t *testing.T) {
	// All-positive deltas over the window: losses sum to 0, RSI = 100.
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)*2
	}
	assert.Equal(t, 100.0, RSI(closes))
}

func TestRSIAllLossesNearZero(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 200 - float64(i)*2
	}
	// gains = 0 so RSI = 100 - 100/(1+0) = 0.
	assert.Equal(t, 0.0, RSI(closes))
}

func TestRSIKnownValue(t *testing.T) {
	// Alternating +2/-1 over 14 transitions: gains=14, losses=7,
	// RS=2, RSI = 100 - 100/3 = 66.666...
	closes := []float64{100}
	for i := 0; i < 7; i++ {
		closes = append(closes, closes[len(closes)-1]+2)
		closes = append(closes, closes[len(closes)-1]-1)
	}
	assert.InDelta(t, 66.6667, RSI(closes), 0.001)
}

func TestRSIBounds(t *testing.T) {
	// RSI stays in [0, 100] for assorted series.
	series := [][]float64{
		{100, 101, 99, 102, 98, 103, 97, 104, 96, 105, 95, 106, 94, 107, 93},
		{50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50},
	}
	for i, closes := range series {
		rsi := RSI(closes)
		assert.GreaterOrEqual(t, rsi, 0.0, "series %d", i)
		assert.LessOrEqual(t, rsi, 100.0, "series %d", i)
	}
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   contracts.Trend
	}{
		{
			name:   "too short",
			closes: []float64{100, 101, 102, 103},
			want:   contracts.TrendNeutral,
		},
		{
			name:   "bullish above threshold",
			closes: []float64{95, 100, 101, 102, 103, 104}, // +4% over lookback
			want:   contracts.TrendBullish,
		},
		{
			name:   "bearish below threshold",
			closes: []float64{105, 104, 102, 101, 100, 99}, // -4.8% over lookback
			want:   contracts.TrendBearish,
		},
		{
			name:   "flat is neutral",
			closes: []float64{100, 100.5, 100.2, 100.8, 100.3, 101}, // +0.5%
			want:   contracts.TrendNeutral,
		},
		{
			name:   "exactly at threshold is neutral",
			closes: []float64{100, 100, 100, 100, 100, 102}, // +2.0%, not strictly above
			want:   contracts.TrendNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Trend(tt.closes))
		})
	}
}

func TestCompute(t *testing.T) {
	series := make(contracts.PriceSeries, 0, 20)
	price := 100.0
	for i := 0; i < 20; i++ {
		price += 1.5
		series = append(series, contracts.PricePoint{
			Date:  fmt.Sprintf("2026-08-%02d", i+1),
			Close: price,
		})
	}

	ind := Compute(series)
	assert.Equal(t, 100.0, ind.RSI14)
	assert.Equal(t, contracts.TrendBullish, ind.Trend)
}

func TestComputeEmptySeries(t *testing.T) {
	ind := Compute(contracts.PriceSeries{})
	assert.Equal(t, 50.0, ind.RSI14)
	assert.Equal(t, contracts.TrendNeutral, ind.Trend)
}
