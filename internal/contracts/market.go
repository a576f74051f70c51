package contracts

import "sort"

// Quote is a single real-time quote from the primary provider.
// Ephemeral; authoritative for current price when Price is non-zero.
type Quote struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	SessionHigh   float64 `json:"session_high,omitempty"`
	SessionLow    float64 `json:"session_low,omitempty"`
}

// PricePoint is one daily close.
type PricePoint struct {
	Date  string  `json:"date"` // calendar day, YYYY-MM-DD
	Close float64 `json:"price"`
}

// PriceSeries is an ordered sequence of daily closes, chronological
// ascending, no duplicate dates. Gaps (missing trading days) are
// tolerated, never interpolated.
type PriceSeries []PricePoint

// Closes returns just the close prices, in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}
	return closes
}

// SortAscending orders the series by date, oldest first.
func (s PriceSeries) SortAscending() {
	sort.Slice(s, func(i, j int) bool { return s[i].Date < s[j].Date })
}

// Trend classifies short-window price direction.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// Indicators holds derived technical indicators. Recomputed on every
// report, never cached across calls.
type Indicators struct {
	RSI14 float64 `json:"rsi_14"` // [0, 100]
	Trend Trend   `json:"trend"`
}
