package providers

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/halcyonfi/verdict/pkg/metrics"
)

// Provider labels used for latency metrics.
const (
	creditLatencyLabel = "credit"
	esgLatencyLabel    = "esg"
)

// Default simulated network latency bounds.
const (
	defaultMinLatency = 500 * time.Millisecond
	defaultMaxLatency = 1500 * time.Millisecond
	defaultRandomSeed = 42
)

// latencySimulator sleeps for a pseudo-random duration inside the configured
// range, honoring ctx. Only the delay is random; the wrapped providers stay
// fully deterministic.
type latencySimulator struct {
	minLatency time.Duration
	maxLatency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func newLatencySimulator(opts ...LatencyOption) *latencySimulator {
	s := &latencySimulator{
		minLatency: defaultMinLatency,
		maxLatency: defaultMaxLatency,
		rng:        rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic seed for reproducible testing
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *latencySimulator) wait(ctx context.Context) error {
	s.mu.Lock()
	latency := s.minLatency
	if s.maxLatency > s.minLatency {
		latency += time.Duration(s.rng.Int63n(int64(s.maxLatency - s.minLatency)))
	}
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled: %w", ctx.Err())
	case <-time.After(latency):
		return nil
	}
}

// LatencyOption applies a configuration option to the latency simulator.
type LatencyOption func(*latencySimulator)

// WithLatencyRange sets the simulated latency range.
func WithLatencyRange(minLatency, maxLatency time.Duration) LatencyOption {
	return func(s *latencySimulator) {
		if minLatency > 0 && maxLatency > minLatency {
			s.minLatency = minLatency
			s.maxLatency = maxLatency
		}
	}
}

// LatentCreditProvider decorates a CreditProvider with simulated latency.
type LatentCreditProvider struct {
	inner CreditProvider
	sim   *latencySimulator
}

// NewLatentCreditProvider wraps inner so every call resolves after a random
// delay without changing the returned values.
func NewLatentCreditProvider(inner CreditProvider, opts ...LatencyOption) *LatentCreditProvider {
	return &LatentCreditProvider{inner: inner, sim: newLatencySimulator(opts...)}
}

// CreditScore waits out the simulated latency then delegates to the inner
// provider.
func (p *LatentCreditProvider) CreditScore(ctx context.Context, ssn string) (CreditScore, error) {
	start := time.Now()
	if err := p.sim.wait(ctx); err != nil {
		return CreditScore{}, err
	}
	metrics.RecordProviderLatency(creditLatencyLabel, float64(time.Since(start).Milliseconds()))
	return p.inner.CreditScore(ctx, ssn)
}

// LatentESGProvider decorates an ESGProvider with simulated latency.
type LatentESGProvider struct {
	inner ESGProvider
	sim   *latencySimulator
}

// NewLatentESGProvider wraps inner so every call resolves after a random
// delay without changing the returned values.
func NewLatentESGProvider(inner ESGProvider, opts ...LatencyOption) *LatentESGProvider {
	return &LatentESGProvider{inner: inner, sim: newLatencySimulator(opts...)}
}

// ESGScore waits out the simulated latency then delegates to the inner
// provider.
func (p *LatentESGProvider) ESGScore(ctx context.Context, company, industry string) (ESGScore, error) {
	start := time.Now()
	if err := p.sim.wait(ctx); err != nil {
		return ESGScore{}, err
	}
	metrics.RecordProviderLatency(esgLatencyLabel, float64(time.Since(start).Milliseconds()))
	return p.inner.ESGScore(ctx, company, industry)
}
