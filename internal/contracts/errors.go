package contracts

import "errors"

// Provider failure taxonomy. Adapters classify upstream failures into
// these sentinels so callers can branch with errors.Is instead of
// string matching.
var (
	// ErrProviderUnavailable covers network errors, timeouts, and 5xx.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrRateLimited covers provider-reported limits, including
	// "limit reached" notices embedded in otherwise-200 JSON bodies.
	// Rate-limited calls are never retried.
	ErrRateLimited = errors.New("provider rate limit reached")

	// ErrMalformedPayload means the response parsed but lacks the
	// fields the adapter needs.
	ErrMalformedPayload = errors.New("malformed provider payload")

	// ErrNotFound means the provider explicitly reported an unknown ticker.
	ErrNotFound = errors.New("ticker not found")
)
