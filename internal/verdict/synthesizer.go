// Package verdict derives the four time-horizon trade calls from
// indicators and the current quote. Synthesis is deterministic: same
// inputs, same verdicts, no external calls, no randomness.
//
// Confidence values are fixed constants per rule branch. They express
// rule-strength tier, not statistical certainty.
package verdict

import (
	"fmt"

	"github.com/tickerpulse/backend/internal/contracts"
)

// Day-trade RSI cutoffs.
const (
	rsiOversold   = 35.0
	rsiOverbought = 65.0
)

// Per-branch confidence tiers.
const (
	confidenceStrong   = 0.75
	confidenceModerate = 0.65
	confidenceWeak     = 0.5
)

// Synthesize produces exactly one verdict per horizon. Every rationale
// list is non-empty by construction.
func Synthesize(ind contracts.Indicators, quote *contracts.Quote) contracts.VerdictSet {
	return contracts.VerdictSet{
		DayTrade:   dayTrade(ind, quote),
		SwingTrade: trendDriven(contracts.HorizonSwing, ind),
		LongTerm:   trendDriven(contracts.HorizonLongTerm, ind),
		Defensive:  defensive(ind),
	}
}

// dayTrade is momentum-driven: oversold RSI or a down day argues for a
// mean-reversion buy, overbought RSI for a sell.
func dayTrade(ind contracts.Indicators, quote *contracts.Quote) contracts.Verdict {
	switch {
	case ind.RSI14 < rsiOversold || (ind.RSI14 < 50 && quote.ChangePercent < 0):
		return contracts.Verdict{
			Call:       contracts.CallBuy,
			Confidence: confidenceStrong,
			Rationale: []string{
				fmt.Sprintf("Oversold RSI level (%.0f).", ind.RSI14),
				"Mean reversion likely.",
			},
		}
	case ind.RSI14 > rsiOverbought:
		return contracts.Verdict{
			Call:       contracts.CallSell,
			Confidence: confidenceStrong,
			Rationale: []string{
				fmt.Sprintf("Overbought conditions (RSI %.0f).", ind.RSI14),
				"Pullback expected.",
			},
		}
	default:
		return contracts.Verdict{
			Call:       contracts.CallHold,
			Confidence: confidenceWeak,
			Rationale: []string{
				"Neutral momentum.",
				"Consolidation pattern.",
			},
		}
	}
}

// trendDriven covers the swing and long-term horizons.
func trendDriven(horizon contracts.Horizon, ind contracts.Indicators) contracts.Verdict {
	label := "Swing window"
	if horizon == contracts.HorizonLongTerm {
		label = "Long-term view"
	}

	switch ind.Trend {
	case contracts.TrendBullish:
		return contracts.Verdict{
			Call:       contracts.CallBuy,
			Confidence: confidenceModerate,
			Rationale: []string{
				fmt.Sprintf("%s: bullish price trend.", label),
				"Volume profile support.",
			},
		}
	case contracts.TrendBearish:
		return contracts.Verdict{
			Call:       contracts.CallAvoid,
			Confidence: confidenceModerate,
			Rationale: []string{
				fmt.Sprintf("%s: bearish price trend.", label),
				"Wait for a confirmed reversal.",
			},
		}
	default:
		return contracts.Verdict{
			Call:       contracts.CallHold,
			Confidence: confidenceWeak,
			Rationale: []string{
				fmt.Sprintf("%s: no directional trend.", label),
				"Awaiting specific market catalysts.",
			},
		}
	}
}

// defensive frames the same trend for capital preservation: a bearish
// trend argues for holding existing exposure, not opening new risk.
func defensive(ind contracts.Indicators) contracts.Verdict {
	switch ind.Trend {
	case contracts.TrendBullish:
		return contracts.Verdict{
			Call:       contracts.CallBuy,
			Confidence: confidenceWeak,
			Rationale: []string{
				"Uptrend supports a small defensive position.",
				"Size conservatively.",
			},
		}
	case contracts.TrendBearish:
		return contracts.Verdict{
			Call:       contracts.CallHold,
			Confidence: confidenceModerate,
			Rationale: []string{
				"Bearish trend: preserve capital, avoid new exposure.",
				"Reassess after trend stabilizes.",
			},
		}
	default:
		return contracts.Verdict{
			Call:       contracts.CallHold,
			Confidence: confidenceWeak,
			Rationale: []string{
				"No directional signal for defensive positioning.",
			},
		}
	}
}
