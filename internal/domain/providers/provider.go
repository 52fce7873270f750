// Package providers defines the external data provider contracts and the
// deterministic mock implementations standing in for real credit-bureau and
// ESG integrations.
//
// The mocks derive every value from a rolling multiply-hash over the input
// identity string, so the same input always yields exactly the same output.
// Simulated network latency is a separate decorator and never affects the
// computed values.
package providers

import (
	"context"

	"github.com/halcyonfi/verdict/internal/domain/model"
)

// Score types carried across the provider boundary.
// Using the model types for consistency.
type (
	CreditScore = model.CreditScore
	ESGScore    = model.ESGScore
)

// CreditProvider fetches a credit rating for an SSN-like identity string.
type CreditProvider interface {
	// CreditScore returns the rating, honoring ctx for cancellation.
	CreditScore(ctx context.Context, ssn string) (CreditScore, error)
}

// ESGProvider fetches an ESG rating for a company within an industry.
type ESGProvider interface {
	// ESGScore returns the rating, honoring ctx for cancellation.
	ESGScore(ctx context.Context, company, industry string) (ESGScore, error)
}

// identityHash is a rolling multiply-hash over the character codes of s.
// It is intentionally simple: the mocks only need a stable, well-spread
// mapping from identity strings to score bands.
func identityHash(s string) uint32 {
	h := uint32(17)
	for _, r := range s {
		h = h*31 + uint32(r)
	}
	return h
}

// hashBand reduces identityHash(s) into the inclusive range [lo, hi].
func hashBand(s string, lo, hi int) int {
	span := uint32(hi - lo + 1)
	return lo + int(identityHash(s)%span)
}
