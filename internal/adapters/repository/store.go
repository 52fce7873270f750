// Package repository defines the batch job store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/halcyonfi/verdict/internal/domain/model"
)

// Status is the lifecycle state of a batch job.
type Status string

// Job lifecycle states.
const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
)

// Job is one submitted batch together with its lifecycle state and, once
// completed, its results and summary.
type Job struct {
	ID          string              `json:"id"`
	Status      Status              `json:"status"`
	Rows        []model.BatchRow    `json:"-"`
	RowCount    int                 `json:"row_count"`
	SubmittedAt time.Time           `json:"submitted_at"`
	StartedAt   time.Time           `json:"started_at,omitzero"`
	CompletedAt time.Time           `json:"completed_at,omitzero"`
	Results     []model.BatchResult `json:"results,omitempty"`
	Summary     model.BatchSummary  `json:"summary,omitzero"`
}

// Store provides read/write access to batch job state.
type Store interface {
	// Put inserts a new job. Returns ErrExists if the id is taken.
	Put(ctx context.Context, job Job) error

	// Get returns the job for id. Returns ErrNotFound if unknown.
	Get(ctx context.Context, id string) (Job, error)

	// MarkRunning transitions a job to RUNNING.
	MarkRunning(ctx context.Context, id string) error

	// MarkCompleted transitions a job to COMPLETED and attaches its
	// results and summary.
	MarkCompleted(ctx context.Context, id string, results []model.BatchResult, summary model.BatchSummary) error

	// InFlight returns the number of jobs not yet completed.
	InFlight(ctx context.Context) int

	// Count returns the number of jobs tracked in the store.
	Count(ctx context.Context) int
}
