// Package cache provides the provider score cache: a small string
// key/value store used to memoize deterministic provider results so the
// latency-decorated fetch path only pays the simulated round trip once per
// identity.
//
// Implementations: a bounded in-memory store and a Redis-backed store.
// The cache is an optimization, never a system of record; every cached
// value can be recomputed from the identity string alone.
package cache

import "context"

// Cache is a best-effort string key/value store. Lookups that miss, fail
// or race simply recompute; Set failures are ignored by callers.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a value under key.
	Set(ctx context.Context, key, value string) error

	// Size returns the current number of cached entries, or -1 when the
	// implementation cannot tell cheaply.
	Size() int64
}
