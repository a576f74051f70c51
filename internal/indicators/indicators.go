// Package indicators computes technical indicators from a daily close
// series. All functions are pure and run on data already in memory.
package indicators

import "github.com/tickerpulse/backend/internal/contracts"

const (
	// rsiPeriod is the RSI lookback window.
	rsiPeriod = 14

	// rsiNeutral is returned when the series is too short to compute
	// RSI. A documented default, not an error.
	rsiNeutral = 50.0

	// trendLookback compares the latest close against the close this
	// many points earlier.
	trendLookback = 5

	// trendThreshold is the relative change that separates bullish or
	// bearish from neutral. Fixed at 2%.
	trendThreshold = 0.02
)

// Compute derives the full indicator set from a chronological
// ascending close series.
func Compute(series contracts.PriceSeries) contracts.Indicators {
	closes := series.Closes()
	return contracts.Indicators{
		RSI14: RSI(closes),
		Trend: Trend(closes),
	}
}

// RSI computes a simplified fixed-window RSI(14): gains and losses are
// summed over the first min(14, len-1) transitions of the series, with
// no rolling update and no Wilder smoothing. This is an intentional
// simplification, not an approximation of the canonical smoothed RSI.
//
// Fewer than 14 points returns the neutral 50. A window with zero
// losses returns 100.
func RSI(closes []float64) float64 {
	if len(closes) < rsiPeriod {
		return rsiNeutral
	}

	transitions := rsiPeriod
	if len(closes)-1 < transitions {
		transitions = len(closes) - 1
	}

	var gains, losses float64
	for i := 1; i <= transitions; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses += -change
		}
	}

	if losses == 0 {
		return 100.0
	}

	rs := gains / losses
	return 100.0 - (100.0 / (1.0 + rs))
}

// Trend classifies short-window direction by comparing the most recent
// close with the close trendLookback points earlier. Fewer than
// trendLookback points is neutral.
func Trend(closes []float64) contracts.Trend {
	if len(closes) < trendLookback {
		return contracts.TrendNeutral
	}

	recent := closes[len(closes)-1]
	previous := closes[len(closes)-trendLookback]
	if previous == 0 {
		return contracts.TrendNeutral
	}

	change := (recent - previous) / previous
	switch {
	case change > trendThreshold:
		return contracts.TrendBullish
	case change < -trendThreshold:
		return contracts.TrendBearish
	default:
		return contracts.TrendNeutral
	}
}
