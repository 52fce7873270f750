// Package app provides the core business service.
package app

import (
	"time"

	"github.com/halcyonfi/verdict/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of batch job workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the batch job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithChunkSize sets how many rows the batch processor scores between
// yield points.
func WithChunkSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithMaxBatchRows caps the number of rows accepted per batch submission.
func WithMaxBatchRows(max int) Option {
	return func(s *Service) {
		if max > 0 {
			s.maxBatchRows = max
		}
	}
}

// WithCacheSize sets the bound of the in-memory provider score cache.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithRedisAddr points the provider score cache at a Redis instance
// instead of the in-memory cache.
func WithRedisAddr(addr string) Option {
	return func(s *Service) {
		s.redisAddr = addr
	}
}

// WithProviderLatencyRange enables the simulated provider latency
// decorator with the given bounds.
func WithProviderLatencyRange(min, max time.Duration) Option {
	return func(s *Service) {
		if min > 0 && max > min {
			s.providerMinLatency = min
			s.providerMaxLatency = max
		}
	}
}

// WithBatchProgress registers a callback invoked after each row a batch
// processes, with the number of rows done so far and the total.
func WithBatchProgress(fn func(done, total int)) Option {
	return func(s *Service) {
		if fn != nil {
			s.progress = fn
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
