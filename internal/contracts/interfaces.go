package contracts

import "context"

// QuoteProvider fetches a single current quote for one ticker.
// Mandatory path: assembly fails without it.
type QuoteProvider interface {
	Quote(ctx context.Context, ticker string) (*Quote, error)
}

// HistoryProvider fetches a bounded daily close series, chronological
// ascending. Malformed payloads yield an empty series, not an error.
type HistoryProvider interface {
	DailyHistory(ctx context.Context, ticker string) (PriceSeries, error)
}

// PeerProvider fetches related tickers. Best-effort.
type PeerProvider interface {
	Peers(ctx context.Context, ticker string) ([]string, error)
}

// MoverProvider fetches today's bulk top-gainer / most-active lists.
type MoverProvider interface {
	TopGainers(ctx context.Context) ([]Mover, error)
	MostActive(ctx context.Context) ([]Mover, error)
}

// NarrativeProvider generates the optional news/narrative block from
// known quote data. Any failure falls back to static placeholders.
// The raw payload rides along so the assembler can probe it for
// auxiliary fields (fallback price keys) the structured block drops.
type NarrativeProvider interface {
	Narrative(ctx context.Context, ticker string, quote *Quote) (*NarrativeResult, error)
}

// ShortInterestProvider returns short-interest percentages keyed by
// ticker. Best-effort; a missing ticker means "not covered".
type ShortInterestProvider interface {
	ShortInterest(ctx context.Context) (map[string]float64, error)
}
