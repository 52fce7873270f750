// Package batch applies the full scoring pipeline across a borrower dataset.
package batch

import (
	"github.com/halcyonfi/verdict/pkg/logger"
)

// Option applies a configuration option to the Processor.
type Option func(*Processor)

// WithChunkSize sets how many rows are processed between yield points.
// A non-positive size disables yielding.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithProgress sets the per-row progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Processor) {
		if fn != nil {
			p.progress = fn
		}
	}
}

// WithLogger sets a custom logger for the processor.
func WithLogger(logger logger.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}
