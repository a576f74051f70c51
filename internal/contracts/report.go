package contracts

// Horizon is a trading timeframe category. Each receives an
// independent verdict; the four form a fixed set, never partial.
type Horizon string

const (
	HorizonDayTrade  Horizon = "day_trade"
	HorizonSwing     Horizon = "swing_trade"
	HorizonLongTerm  Horizon = "long_term"
	HorizonDefensive Horizon = "defensive"
)

// Call is the action a verdict recommends.
type Call string

const (
	CallBuy   Call = "buy"
	CallHold  Call = "hold"
	CallSell  Call = "sell"
	CallAvoid Call = "avoid"
	CallShort Call = "short"
)

// Verdict is one rule-derived trade call for one horizon.
// Confidence expresses rule-strength tier, not statistical certainty.
type Verdict struct {
	Call       Call     `json:"verdict"`
	Confidence float64  `json:"confidence"` // [0, 1]
	Rationale  []string `json:"rationale"`  // always non-empty
}

// VerdictSet holds the four horizon verdicts.
type VerdictSet struct {
	DayTrade   Verdict `json:"day_trade"`
	SwingTrade Verdict `json:"swing_trade"`
	LongTerm   Verdict `json:"long_term"`
	Defensive  Verdict `json:"defensive"`
}

// Summary is the report headline block.
type Summary struct {
	OneLiner   string `json:"one_liner"`
	MarketMood string `json:"market_mood"`
	RiskLevel  string `json:"risk_level"`
}

// NewsAnalysis holds the narrative block. Populated by the optional
// narrative provider, otherwise from static placeholders.
type NewsAnalysis struct {
	Sentiment    string `json:"sentiment"`
	Narrative    string `json:"narrative_summary"`
	CatalystRisk string `json:"catalyst_risk"`
}

// NarrativeResult pairs the structured narrative block with the raw
// decoded provider payload it was extracted from.
type NarrativeResult struct {
	News    NewsAnalysis
	Payload map[string]interface{}
}

// AnalystReport is the canonical output of report assembly. Every
// field carries a defined, type-correct value even when optional
// upstream sources fail; unknown values resolve to documented
// defaults. Price 0 means "pending", never a real $0.00.
type AnalystReport struct {
	Ticker          string       `json:"ticker"`
	Price           float64      `json:"price"`
	ChangePercent   float64      `json:"change_percent"`
	Summary         Summary      `json:"overall_summary"`
	Verdicts        VerdictSet   `json:"verdicts"`
	News            NewsAnalysis `json:"news_analysis"`
	History         PriceSeries  `json:"historical_data"`
	ConfidenceNotes []string     `json:"confidence_notes"`
	RelatedTickers  []string     `json:"related_stocks,omitempty"`
}

// All returns the four verdicts keyed by horizon.
func (v *VerdictSet) All() map[Horizon]Verdict {
	return map[Horizon]Verdict{
		HorizonDayTrade:  v.DayTrade,
		HorizonSwing:     v.SwingTrade,
		HorizonLongTerm:  v.LongTerm,
		HorizonDefensive: v.Defensive,
	}
}
