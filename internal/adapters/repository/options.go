// Package repository defines the batch job store interface and errors.
package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithMaxJobs sets how many completed jobs are retained before the oldest
// are evicted. A non-positive value disables eviction.
func WithMaxJobs(maxJobs int) Option {
	return func(s *MemStore) {
		s.maxJobs = maxJobs
	}
}
