// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// JobQueueSize bounds the in-memory batch job queue.
	JobQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of batch job workers.
	WorkerCount int `koanf:"worker_count"`

	// ChunkSize sets how many batch rows are processed between yield points.
	ChunkSize int `koanf:"chunk_size"`

	// MaxBatchRows caps the number of rows accepted in one batch submission.
	MaxBatchRows int `koanf:"max_batch_rows"`

	// ProviderLatencyMinMS and ProviderLatencyMaxMS simulate external bureau
	// latency bounds. Set both to zero to disable the simulation.
	ProviderLatencyMinMS int `koanf:"provider_latency_min_ms"`
	ProviderLatencyMaxMS int `koanf:"provider_latency_max_ms"`

	// CacheSize bounds the in-memory provider score cache.
	CacheSize int `koanf:"cache_size"`

	// RedisAddr switches the provider score cache to Redis when non-empty,
	// e.g. "localhost:6379".
	RedisAddr string `koanf:"redis_addr"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:             "info",
		Addr:                 ":8090",
		JobQueueSize:         1024,
		WorkerCount:          runtime.NumCPU() * 2,
		ChunkSize:            10,
		MaxBatchRows:         10_000,
		ProviderLatencyMinMS: 500,
		ProviderLatencyMaxMS: 1500,
		CacheSize:            10_000,
		RedisAddr:            "",
	}
	return c
}
