package report

import (
	"strings"

	"github.com/tickerpulse/backend/internal/contracts"
	"github.com/tickerpulse/backend/pkg/numutil"
)

// Static defaults for fields no upstream source populated. Unknown
// values always resolve to these, never to absent or null fields.
const (
	defaultOneLiner     = "Synthesizing market data..."
	defaultMood         = "neutral"
	defaultRisk         = "medium"
	defaultSentiment    = "neutral"
	defaultNarrative    = "No narrative source available for this session."
	defaultCatalystRisk = "medium"
	defaultNote         = "Report assembled from available sources."
)

// priceKeys is the fixed probe order for auxiliary payloads whose
// price may hide under a provider-specific key name.
var priceKeys = []string{"price", "current_price", "last_price", "market_price", "last"}

// FindPrice probes an auxiliary payload for a usable price field. 0
// means no key resolved, which callers render as "pending", never as
// a real market price of zero.
func FindPrice(payload map[string]interface{}) float64 {
	if payload == nil {
		return 0
	}
	for _, key := range priceKeys {
		if v, ok := payload[key]; ok {
			if price := numutil.Coerce(v); price != 0 {
				return price
			}
		}
	}
	return 0
}

// sanitize enforces total field coverage over a report in place.
// After this call no field is absent, empty, or wrong-typed.
func sanitize(r *contracts.AnalystReport, ticker string) {
	if strings.TrimSpace(r.Ticker) == "" {
		r.Ticker = strings.ToUpper(strings.TrimSpace(ticker))
	}

	if r.Summary.OneLiner == "" {
		r.Summary.OneLiner = defaultOneLiner
	}
	if r.Summary.MarketMood == "" {
		r.Summary.MarketMood = defaultMood
	}
	if r.Summary.RiskLevel == "" {
		r.Summary.RiskLevel = defaultRisk
	}

	sanitizeNews(&r.News)

	r.Verdicts.DayTrade = sanitizeVerdict(r.Verdicts.DayTrade)
	r.Verdicts.SwingTrade = sanitizeVerdict(r.Verdicts.SwingTrade)
	r.Verdicts.LongTerm = sanitizeVerdict(r.Verdicts.LongTerm)
	r.Verdicts.Defensive = sanitizeVerdict(r.Verdicts.Defensive)

	if r.History == nil {
		r.History = contracts.PriceSeries{}
	}

	if len(r.ConfidenceNotes) == 0 {
		r.ConfidenceNotes = []string{defaultNote}
	}
}

func sanitizeNews(n *contracts.NewsAnalysis) {
	if n.Sentiment == "" {
		n.Sentiment = defaultSentiment
	}
	if n.Narrative == "" {
		n.Narrative = defaultNarrative
	}
	if n.CatalystRisk == "" {
		n.CatalystRisk = defaultCatalystRisk
	}
}

// sanitizeVerdict guarantees a usable call, bounded confidence, and a
// non-empty rationale list.
func sanitizeVerdict(v contracts.Verdict) contracts.Verdict {
	if v.Call == "" {
		v.Call = contracts.CallHold
	}
	if v.Confidence <= 0 || v.Confidence > 1 {
		v.Confidence = 0.5
	}
	if len(v.Rationale) == 0 {
		v.Rationale = []string{"Awaiting specific market catalysts."}
	}
	return v
}
