package repository

import (
	"context"
	"sync"
	"time"

	"github.com/halcyonfi/verdict/internal/domain/model"
)

// defaultMaxJobs bounds how many completed jobs are retained in memory.
const defaultMaxJobs = 1000

// MemStore implements Store with an in-memory map. Completed jobs beyond
// the retention bound are evicted oldest-first; pending and running jobs
// are never evicted.
type MemStore struct {
	mu      sync.RWMutex
	jobs    map[string]Job
	order   []string // completed job ids, oldest first
	maxJobs int
}

// NewMemStore creates an in-memory job store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		maxJobs: defaultMaxJobs,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	s.jobs = make(map[string]Job)
	return s
}

// Put inserts a new job.
func (s *MemStore) Put(_ context.Context, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.ID]; ok {
		return ErrExists
	}
	s.jobs[job.ID] = job
	return nil
}

// Get returns the job for id.
func (s *MemStore) Get(_ context.Context, id string) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

// MarkRunning transitions a job to RUNNING.
func (s *MemStore) MarkRunning(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	job.Status = StatusRunning
	job.StartedAt = time.Now().UTC()
	s.jobs[id] = job
	return nil
}

// MarkCompleted transitions a job to COMPLETED, attaches its results and
// drops the raw rows, which are no longer needed.
func (s *MemStore) MarkCompleted(_ context.Context, id string, results []model.BatchResult, summary model.BatchSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	job.Status = StatusCompleted
	job.CompletedAt = time.Now().UTC()
	job.Results = results
	job.Summary = summary
	job.Rows = nil
	s.jobs[id] = job

	s.order = append(s.order, id)
	s.evictCompleted()
	return nil
}

// evictCompleted drops the oldest completed jobs beyond the retention
// bound. Must be called with s.mu held.
func (s *MemStore) evictCompleted() {
	if s.maxJobs <= 0 {
		return
	}
	for len(s.order) > s.maxJobs {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.jobs, oldest)
	}
}

// InFlight returns the number of jobs not yet completed.
func (s *MemStore) InFlight(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.jobs) - len(s.order)
}

// Count returns the number of jobs tracked.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.jobs)
}
