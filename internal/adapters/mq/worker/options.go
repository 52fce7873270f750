// Package worker defines worker contracts for asynchronous batch job
// processing.
package worker

import (
	"github.com/halcyonfi/verdict/pkg/logger"
)

// Option applies a configuration option to the JobWorker.
type Option func(*JobWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *JobWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(logger logger.Logger) Option {
	return func(w *JobWorker) {
		if logger != nil {
			w.logger = logger
		}
	}
}
