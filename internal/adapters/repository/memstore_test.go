package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/halcyonfi/verdict/internal/adapters/repository"
	"github.com/halcyonfi/verdict/internal/domain/decision"
	"github.com/halcyonfi/verdict/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func newJob(id string, rows int) repository.Job {
	batchRows := make([]model.BatchRow, rows)
	return repository.Job{
		ID:          id,
		Status:      repository.StatusPending,
		Rows:        batchRows,
		RowCount:    rows,
		SubmittedAt: time.Now().UTC(),
	}
}

func TestMemStore(t *testing.T) {
	convey.Convey("Given an in-memory job store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		convey.Convey("When inserting and reading a job", func() {
			err := store.Put(ctx, newJob("job-1", 5))

			convey.Convey("Then the job should be retrievable as pending", func() {
				convey.So(err, convey.ShouldBeNil)
				job, err := store.Get(ctx, "job-1")
				convey.So(err, convey.ShouldBeNil)
				convey.So(job.Status, convey.ShouldEqual, repository.StatusPending)
				convey.So(job.RowCount, convey.ShouldEqual, 5)
				convey.So(store.Count(ctx), convey.ShouldEqual, 1)
				convey.So(store.InFlight(ctx), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When inserting a duplicate id", func() {
			_ = store.Put(ctx, newJob("job-1", 1))
			err := store.Put(ctx, newJob("job-1", 1))

			convey.Convey("Then it should report the conflict", func() {
				convey.So(err, convey.ShouldEqual, repository.ErrExists)
			})
		})

		convey.Convey("When reading an unknown id", func() {
			_, err := store.Get(ctx, "missing")

			convey.Convey("Then it should report not found", func() {
				convey.So(err, convey.ShouldEqual, repository.ErrNotFound)
			})
		})

		convey.Convey("When walking a job through its lifecycle", func() {
			_ = store.Put(ctx, newJob("job-1", 2))

			convey.So(store.MarkRunning(ctx, "job-1"), convey.ShouldBeNil)
			running, _ := store.Get(ctx, "job-1")
			convey.So(running.Status, convey.ShouldEqual, repository.StatusRunning)
			convey.So(running.StartedAt.IsZero(), convey.ShouldBeFalse)

			results := []model.BatchResult{
				{RowIndex: 0, Decision: decision.Approved, CompositeScore: 800},
				{RowIndex: 1, Decision: decision.Rejected, CompositeScore: 400},
			}
			summary := model.BatchSummary{TotalProcessed: 2, ApprovedCount: 1, RejectedCount: 1}
			convey.So(store.MarkCompleted(ctx, "job-1", results, summary), convey.ShouldBeNil)

			convey.Convey("Then the completed job should carry results and drop rows", func() {
				done, err := store.Get(ctx, "job-1")
				convey.So(err, convey.ShouldBeNil)
				convey.So(done.Status, convey.ShouldEqual, repository.StatusCompleted)
				convey.So(done.CompletedAt.IsZero(), convey.ShouldBeFalse)
				convey.So(done.Results, convey.ShouldHaveLength, 2)
				convey.So(done.Summary.TotalProcessed, convey.ShouldEqual, 2)
				convey.So(done.Rows, convey.ShouldBeNil)
				convey.So(store.InFlight(ctx), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When transitioning unknown jobs", func() {
			convey.Convey("Then both transitions should report not found", func() {
				convey.So(store.MarkRunning(ctx, "missing"), convey.ShouldEqual, repository.ErrNotFound)
				convey.So(store.MarkCompleted(ctx, "missing", nil, model.BatchSummary{}),
					convey.ShouldEqual, repository.ErrNotFound)
			})
		})

		convey.Convey("When the completed retention bound is exceeded", func() {
			bounded := repository.NewMemStore(repository.WithMaxJobs(2))
			for i := 0; i < 4; i++ {
				id := fmt.Sprintf("job-%d", i)
				_ = bounded.Put(ctx, newJob(id, 1))
				_ = bounded.MarkCompleted(ctx, id, nil, model.BatchSummary{})
			}

			convey.Convey("Then the oldest completed jobs should be evicted", func() {
				convey.So(bounded.Count(ctx), convey.ShouldEqual, 2)
				_, err := bounded.Get(ctx, "job-0")
				convey.So(err, convey.ShouldEqual, repository.ErrNotFound)
				_, err = bounded.Get(ctx, "job-3")
				convey.So(err, convey.ShouldBeNil)
			})

			convey.Convey("And pending jobs should never be evicted", func() {
				_ = bounded.Put(ctx, newJob("pending-1", 1))
				for i := 4; i < 8; i++ {
					id := fmt.Sprintf("job-%d", i)
					_ = bounded.Put(ctx, newJob(id, 1))
					_ = bounded.MarkCompleted(ctx, id, nil, model.BatchSummary{})
				}
				_, err := bounded.Get(ctx, "pending-1")
				convey.So(err, convey.ShouldBeNil)
				convey.So(bounded.InFlight(ctx), convey.ShouldEqual, 1)
			})
		})
	})
}
