// Package worker defines worker contracts for asynchronous batch job
// processing.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/halcyonfi/verdict/internal/adapters/mq/queue"
	"github.com/halcyonfi/verdict/internal/adapters/repository"
	"github.com/halcyonfi/verdict/internal/domain/model"
	"github.com/halcyonfi/verdict/pkg/logger"
	"github.com/halcyonfi/verdict/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Runner scores a batch of rows. The batch processor satisfies this.
type Runner interface {
	Process(ctx context.Context, rows []model.BatchRow) ([]model.BatchResult, model.BatchSummary)
}

// TaskQueue defines how workers receive tasks.
type TaskQueue interface {
	Dequeue(ctx context.Context) <-chan queue.Task
}

// Worker drains batch tasks and records job outcomes in the store.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// JobWorker implements Worker for processing batch jobs.
type JobWorker struct {
	queue  TaskQueue
	runner Runner
	store  repository.Store
	name   string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewJobWorker creates a new worker with configuration options.
func NewJobWorker(q TaskQueue, runner Runner, store repository.Store, opts ...Option) *JobWorker {
	w := &JobWorker{
		queue:    q,
		runner:   runner,
		store:    store,
		name:     "worker", // default name
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(w)
	}

	// Set up logger with worker name if not already set
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *JobWorker) Run(ctx context.Context) {
	defer close(w.done)

	taskChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case task, ok := <-taskChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}
			if err := w.processTask(ctx, task); err != nil {
				w.logger.Error(ctx, "error processing batch job", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *JobWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processTask handles a single batch job end to end. The batch processor
// absorbs row-level failures, so the only errors here are store failures.
func (w *JobWorker) processTask(ctx context.Context, task queue.Task) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := w.store.MarkRunning(ctx, task.JobID); err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("failed to start job %s: %w", task.JobID, err)
	}

	results, summary := w.runner.Process(ctx, task.Rows)

	if err := w.store.MarkCompleted(ctx, task.JobID, results, summary); err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("failed to complete job %s: %w", task.JobID, err)
	}

	metrics.RecordBatchJobCompleted()
	metrics.UpdateBatchJobsInFlight(w.store.InFlight(ctx))
	w.logger.Info(ctx, "batch job completed",
		logger.String("jobID", task.JobID),
		logger.Int("rows", summary.TotalProcessed),
		logger.Int("approved", summary.ApprovedCount),
		logger.Int("review", summary.ReviewCount),
		logger.Int("rejected", summary.RejectedCount),
		logger.Int("errors", summary.ErrorCount),
		logger.Int64("totalTimeMs", summary.TotalTimeMs),
	)
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*JobWorker
	queue   TaskQueue
	runner  Runner
	store   repository.Store

	// Shutdown control
	shutdown chan struct{}

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q TaskQueue, runner Runner, store repository.Store) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:  make([]*JobWorker, workerCount),
		queue:    q,
		runner:   runner,
		store:    store,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewJobWorker(
			q,
			runner,
			store,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, w := range p.workers {
		close(w.shutdown)
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// First close the queue to stop new tasks
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
