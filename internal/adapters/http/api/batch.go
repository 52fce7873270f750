// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/halcyonfi/verdict/internal/app"
	"github.com/halcyonfi/verdict/internal/domain/model"
)

// BatchHandler handles batch submission requests.
type BatchHandler struct {
	deps Dependencies
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(deps Dependencies) *BatchHandler {
	return &BatchHandler{deps: deps}
}

// batchRequest mirrors a batch upload: rows share the six logical borrower
// fields as strings; numeric parsing failures are tolerated downstream.
type batchRequest struct {
	Rows []model.BatchRow `json:"rows"`
}

func (b batchRequest) validate() error {
	if len(b.Rows) == 0 {
		return errors.New("missing rows")
	}
	return nil
}

type batchAckResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

// HandlePostBatch handles POST /batch requests.
func (h *BatchHandler) HandlePostBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	jobID, err := h.deps.SubmitBatch(r.Context(), req.Rows)
	switch {
	case errors.Is(err, app.ErrBatchTooLarge):
		writeError(w, http.StatusBadRequest, "batch_too_large", WrapKind(op, ErrBadRequest, err))
		return
	case errors.Is(err, app.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "submit_failed", err)
		return
	}

	writeJSON(w, http.StatusAccepted, batchAckResponse{
		JobID:  jobID,
		Status: "accepted",
		Rows:   len(req.Rows),
	})
}

// JobsHandler handles batch job status lookups.
type JobsHandler struct {
	deps Dependencies
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(deps Dependencies) *JobsHandler {
	return &JobsHandler{deps: deps}
}

// HandleGetJob handles GET /batch/{id} requests.
func (h *JobsHandler) HandleGetJob(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_batch_job"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/batch/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	job, err := h.deps.Job(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
		return
	}

	writeJSON(w, http.StatusOK, job)
}
