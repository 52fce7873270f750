package cache

import (
	"context"
	"encoding/json"

	"github.com/halcyonfi/verdict/internal/domain/providers"
	"github.com/halcyonfi/verdict/pkg/metrics"
)

// Cache key prefixes per provider.
const (
	creditKeyPrefix = "credit:"
	esgKeyPrefix    = "esg:"

	creditProviderLabel = "credit"
	esgProviderLabel    = "esg"
)

// CachedCreditProvider memoizes an inner CreditProvider. Because the mocks
// are deterministic, a cached score always equals a recomputed one; the
// cache only saves the simulated network round trip.
type CachedCreditProvider struct {
	inner providers.CreditProvider
	cache Cache
}

// NewCachedCreditProvider wraps inner with the given cache.
func NewCachedCreditProvider(inner providers.CreditProvider, cache Cache) *CachedCreditProvider {
	return &CachedCreditProvider{inner: inner, cache: cache}
}

// CreditScore returns the cached rating when present, otherwise fetches
// from the inner provider and stores the result best-effort.
func (p *CachedCreditProvider) CreditScore(ctx context.Context, ssn string) (providers.CreditScore, error) {
	key := creditKeyPrefix + ssn
	if raw, ok := p.cache.Get(ctx, key); ok {
		var score providers.CreditScore
		if err := json.Unmarshal([]byte(raw), &score); err == nil {
			metrics.RecordProviderCacheHit(creditProviderLabel)
			return score, nil
		}
		// Corrupt entry; fall through and refetch.
	}
	metrics.RecordProviderCacheMiss(creditProviderLabel)

	score, err := p.inner.CreditScore(ctx, ssn)
	if err != nil {
		return providers.CreditScore{}, err
	}
	if raw, err := json.Marshal(score); err == nil {
		_ = p.cache.Set(ctx, key, string(raw))
	}
	return score, nil
}

// CachedESGProvider memoizes an inner ESGProvider.
type CachedESGProvider struct {
	inner providers.ESGProvider
	cache Cache
}

// NewCachedESGProvider wraps inner with the given cache.
func NewCachedESGProvider(inner providers.ESGProvider, cache Cache) *CachedESGProvider {
	return &CachedESGProvider{inner: inner, cache: cache}
}

// ESGScore returns the cached rating when present, otherwise fetches from
// the inner provider and stores the result best-effort.
func (p *CachedESGProvider) ESGScore(ctx context.Context, company, industry string) (providers.ESGScore, error) {
	key := esgKeyPrefix + company + ":" + industry
	if raw, ok := p.cache.Get(ctx, key); ok {
		var score providers.ESGScore
		if err := json.Unmarshal([]byte(raw), &score); err == nil {
			metrics.RecordProviderCacheHit(esgProviderLabel)
			return score, nil
		}
	}
	metrics.RecordProviderCacheMiss(esgProviderLabel)

	score, err := p.inner.ESGScore(ctx, company, industry)
	if err != nil {
		return providers.ESGScore{}, err
	}
	if raw, err := json.Marshal(score); err == nil {
		_ = p.cache.Set(ctx, key, string(raw))
	}
	return score, nil
}
