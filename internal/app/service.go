// Package app provides the core business service that implements the
// dependencies required by the HTTP API: single borrower assessments and
// asynchronous batch job processing.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/halcyonfi/verdict/internal/adapters/cache"
	jobqueue "github.com/halcyonfi/verdict/internal/adapters/mq/queue"
	workerpool "github.com/halcyonfi/verdict/internal/adapters/mq/worker"
	"github.com/halcyonfi/verdict/internal/adapters/repository"
	"github.com/halcyonfi/verdict/internal/batch"
	"github.com/halcyonfi/verdict/internal/domain/decision"
	"github.com/halcyonfi/verdict/internal/domain/loan"
	"github.com/halcyonfi/verdict/internal/domain/model"
	"github.com/halcyonfi/verdict/internal/domain/providers"
	"github.com/halcyonfi/verdict/internal/domain/scoring"
	"github.com/halcyonfi/verdict/pkg/logger"
	"github.com/halcyonfi/verdict/pkg/metrics"
)

// Service wires the providers, the batch pipeline and the job store into
// the operations the HTTP API and the CLI consume.
type Service struct {
	mu sync.RWMutex

	// Core components
	credit    providers.CreditProvider
	esg       providers.ESGProvider
	processor *batch.Processor
	jobQueue  jobqueue.Queue
	jobStore  repository.Store
	pool      *workerpool.Pool

	// Configuration
	workerCount  int
	queueSize    int
	chunkSize    int
	maxBatchRows int
	cacheSize    int
	redisAddr    string
	// Simulated provider latency; zero disables the decorator.
	providerMinLatency time.Duration
	providerMaxLatency time.Duration
	// Optional batch progress callback.
	progress func(done, total int)

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Default service configuration constants.
const (
	defaultQueueSize    = 1024
	defaultWorkerCount  = 0 // 0 lets the pool pick from NumCPU
	defaultChunkSize    = 10
	defaultMaxBatchRows = 10_000
	defaultCacheSize    = 10_000
)

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:    defaultQueueSize,
		workerCount:  defaultWorkerCount,
		chunkSize:    defaultChunkSize,
		maxBatchRows: defaultMaxBatchRows,
		cacheSize:    defaultCacheSize,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting assessment service...")

	// Deterministic mock providers. When latency simulation is on, wrap
	// the mocks with the latency decorator plus a score cache so repeat
	// identities only pay the round trip once.
	credit := providers.CreditProvider(providers.NewMockCreditBureau())
	esg := providers.ESGProvider(providers.NewMockESGProvider())
	if s.providerMaxLatency > 0 {
		credit = providers.NewLatentCreditProvider(credit,
			providers.WithLatencyRange(s.providerMinLatency, s.providerMaxLatency))
		esg = providers.NewLatentESGProvider(esg,
			providers.WithLatencyRange(s.providerMinLatency, s.providerMaxLatency))

		scoreCache := s.newScoreCache(ctx)
		credit = cache.NewCachedCreditProvider(credit, scoreCache)
		esg = cache.NewCachedESGProvider(esg, scoreCache)
	}
	s.credit = credit
	s.esg = esg

	procOpts := []batch.Option{
		batch.WithChunkSize(s.chunkSize),
		batch.WithLogger(s.logger.Named("batch")),
	}
	if s.progress != nil {
		procOpts = append(procOpts, batch.WithProgress(s.progress))
	}
	s.processor = batch.NewProcessor(s.credit, s.esg, procOpts...)
	s.jobStore = repository.NewMemStore()
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, s.processor, s.jobStore)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "assessment service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("chunkSize", s.chunkSize),
	)

	return nil
}

// newScoreCache picks the cache backend: Redis when an address is
// configured, the bounded in-memory cache otherwise.
func (s *Service) newScoreCache(ctx context.Context) cache.Cache {
	if s.redisAddr != "" {
		s.logger.Info(ctx, "using redis score cache", logger.String("addr", s.redisAddr))
		return cache.NewRedisCache(s.redisAddr)
	}
	return cache.NewInMemoryCache(cache.WithMaxSize(s.cacheSize))
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping assessment service...")

	if s.jobQueue != nil {
		_ = s.jobQueue.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}

	s.started = false
	s.logger.Info(context.Background(), "assessment service stopped")
}

// Assess runs the full scoring pipeline for one borrower and, when the
// decision is APPROVED, generates loan terms. Every assessment produces a
// fresh composite score; nothing is mutated or reused.
func (s *Service) Assess(ctx context.Context, b model.Borrower) (model.Assessment, error) {
	start := time.Now()

	credit, err := s.credit.CreditScore(ctx, b.SSN)
	if err != nil {
		return model.Assessment{}, err
	}
	esg, err := s.esg.ESGScore(ctx, b.CompanyName, b.IndustrySector)
	if err != nil {
		return model.Assessment{}, err
	}
	incomeAssets := scoring.ScoreIncomeAssets(b.AnnualIncome, b.TotalAssets, b.EstimatedDebt)

	composite := scoring.Calculate(credit.Score, incomeAssets.Score, esg.Overall, time.Since(start))
	terms := loan.Calculate(composite.Total, b.AnnualIncome, composite.Decision)

	metrics.RecordAssessment(string(composite.Decision))
	metrics.RecordAssessmentDuration(float64(composite.ProcessingTimeMs))
	if terms != nil {
		metrics.RecordLoanTermsGenerated()
	}

	s.logger.Debug(ctx, "assessment completed",
		logger.String("borrower", b.FullName),
		logger.Int("total", composite.Total),
		logger.String("decision", string(composite.Decision)),
	)

	return model.Assessment{
		Credit:       credit,
		ESG:          esg,
		IncomeAssets: incomeAssets,
		Composite:    composite,
		Terms:        terms,
	}, nil
}

// SubmitBatch stores a new job for the given rows and enqueues it for
// asynchronous processing. Returns the job id.
func (s *Service) SubmitBatch(ctx context.Context, rows []model.BatchRow) (string, error) {
	if len(rows) > s.maxBatchRows {
		return "", ErrBatchTooLarge
	}

	job := repository.Job{
		ID:          uuid.NewString(),
		Status:      repository.StatusPending,
		Rows:        rows,
		RowCount:    len(rows),
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.jobStore.Put(ctx, job); err != nil {
		return "", err
	}

	if ok := s.jobQueue.Enqueue(ctx, jobqueue.Task{JobID: job.ID, Rows: rows}); !ok {
		return "", ErrBackpressure
	}

	metrics.RecordBatchJobSubmitted()
	metrics.UpdateBatchJobsInFlight(s.jobStore.InFlight(ctx))
	s.logger.Info(ctx, "batch job submitted",
		logger.String("jobID", job.ID),
		logger.Int("rows", len(rows)),
	)
	return job.ID, nil
}

// Job returns the stored state of a batch job.
func (s *Service) Job(ctx context.Context, id string) (repository.Job, error) {
	return s.jobStore.Get(ctx, id)
}

// ProcessBatchSync runs a batch inline, bypassing the job queue. Used by
// the CLI and anywhere results are wanted immediately.
func (s *Service) ProcessBatchSync(ctx context.Context, rows []model.BatchRow) ([]model.BatchResult, model.BatchSummary) {
	return s.processor.Process(ctx, rows)
}

// DetermineDecision re-exposes the threshold classifier so callers display
// the same classification the pipeline computes.
func (s *Service) DetermineDecision(total int) decision.Decision {
	return decision.FromTotal(total)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"queueSize":    s.queueSize,
		"chunkSize":    s.chunkSize,
		"maxBatchRows": s.maxBatchRows,
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["jobsTracked"] = s.jobStore.Count(ctx)
		stats["jobsInFlight"] = s.jobStore.InFlight(ctx)

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateBatchJobsInFlight(s.jobStore.InFlight(ctx))
	}

	return stats
}
