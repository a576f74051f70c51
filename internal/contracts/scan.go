package contracts

// Metric is a numeric field with provenance. Estimated marks values
// substituted from heuristics when the feed does not expose the real
// figure; the presentation layer must never render them as sourced.
type Metric struct {
	Value     float64 `json:"value"`
	Estimated bool    `json:"estimated"`
}

// Sourced wraps a provider-sourced value.
func Sourced(v float64) Metric { return Metric{Value: v} }

// Estimated wraps a heuristic estimate.
func Estimated(v float64) Metric { return Metric{Value: v, Estimated: true} }

// Mover is one top-gainer scan candidate.
type Mover struct {
	Ticker        string  `json:"ticker"`
	CompanyName   string  `json:"company_name"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
	Catalyst      string  `json:"catalyst"`
}

// SqueezeCandidate is one squeeze/high-volume scan candidate.
// ShortInterestPct and DaysToCover may be estimates when no
// short-interest feed covers the symbol.
type SqueezeCandidate struct {
	Ticker           string  `json:"ticker"`
	CompanyName      string  `json:"company_name"`
	Price            float64 `json:"price"`
	Volume           int64   `json:"volume"`
	ShortInterestPct Metric  `json:"short_interest_pct"`
	DaysToCover      Metric  `json:"days_to_cover"`
	SqueezeScore     Metric  `json:"squeeze_score"`
	Rationale        string  `json:"rationale"`
}

// ScanResult pairs scan candidates with their provenance flag.
// IsLive is true only when every field came from a live provider call;
// it is derived mechanically from the Estimated flags, never set by hand.
type ScanResult[T any] struct {
	Candidates []T  `json:"data"`
	IsLive     bool `json:"isLive"`
}

// HasEstimates reports whether any squeeze metric was substituted.
func (c *SqueezeCandidate) HasEstimates() bool {
	return c.ShortInterestPct.Estimated || c.DaysToCover.Estimated || c.SqueezeScore.Estimated
}
