// Package batch applies the full scoring pipeline across a borrower dataset
// and aggregates per-row results into a summary.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/halcyonfi/verdict/internal/domain/decision"
	"github.com/halcyonfi/verdict/internal/domain/model"
	"github.com/halcyonfi/verdict/internal/domain/providers"
	"github.com/halcyonfi/verdict/internal/domain/scoring"
	"github.com/halcyonfi/verdict/pkg/logger"
	"github.com/halcyonfi/verdict/pkg/metrics"
)

// defaultChunkSize bounds how many rows are processed between yield points.
const defaultChunkSize = 10

// ProgressFunc is invoked exactly once per processed row with the 1-indexed
// processed count and the total row count, in row order.
type ProgressFunc func(processed, total int)

// Processor runs the scoring pipeline row by row. Processing is sequential
// so row ordering is preserved; the chunked yield points only hand control
// back to the scheduler, they never reorder work.
type Processor struct {
	credit    providers.CreditProvider
	esg       providers.ESGProvider
	chunkSize int
	progress  ProgressFunc
	logger    logger.Logger
}

// NewProcessor creates a batch processor backed by the given providers.
func NewProcessor(credit providers.CreditProvider, esg providers.ESGProvider, opts ...Option) *Processor {
	p := &Processor{
		credit:    credit,
		esg:       esg,
		chunkSize: defaultChunkSize,
	}

	// Apply all options
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process scores every row and returns the per-row results together with
// the computed summary. A failing row never aborts the batch: its failure
// is absorbed into the result and counted in the error bucket. If ctx is
// cancelled the remaining rows are skipped and the summary covers only the
// processed ones.
func (p *Processor) Process(ctx context.Context, rows []model.BatchRow) ([]model.BatchResult, model.BatchSummary) {
	start := time.Now()
	results := make([]model.BatchResult, 0, len(rows))

	for i, row := range rows {
		if p.chunkSize > 0 && i > 0 && i%p.chunkSize == 0 {
			select {
			case <-ctx.Done():
				if p.logger != nil {
					p.logger.Warn(ctx, "batch cancelled",
						logger.Int("processed", len(results)),
						logger.Int("total", len(rows)),
					)
				}
				return results, Summarize(results, time.Since(start))
			default:
			}
			// Yield point between chunks so a co-resident event loop or
			// scheduler can run; ordering and values are unaffected.
			runtime.Gosched()
		}

		res := p.processRow(ctx, i, row)
		results = append(results, res)

		if res.Error != "" {
			metrics.RecordBatchRowError()
		} else {
			metrics.RecordBatchRow(string(res.Decision))
		}
		if p.progress != nil {
			p.progress(len(results), len(rows))
		}
	}

	summary := Summarize(results, time.Since(start))
	metrics.RecordBatchDuration(float64(summary.TotalTimeMs))
	return results, summary
}

// processRow runs the full pipeline for one row. Panics are recovered at
// the row boundary and converted into an error result with a zero score
// and a REJECTED decision.
func (p *Processor) processRow(ctx context.Context, idx int, row model.BatchRow) (result model.BatchResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.Error(ctx, "row scoring panicked",
					logger.Int("row", idx),
					logger.Any("panic", r),
				)
			}
			result = errorResult(idx, row.Name, fmt.Sprintf("%v", r), time.Since(start))
		}
	}()

	income := parseAmount(row.AnnualIncome)
	assets := parseAmount(row.TotalAssets)

	credit, err := p.credit.CreditScore(ctx, row.SSN)
	if err != nil {
		return errorResult(idx, row.Name, err.Error(), time.Since(start))
	}
	esg, err := p.esg.ESGScore(ctx, row.Company, row.Industry)
	if err != nil {
		return errorResult(idx, row.Name, err.Error(), time.Since(start))
	}
	incomeAssets := scoring.ScoreIncomeAssets(income, assets, nil)

	composite := scoring.Calculate(credit.Score, incomeAssets.Score, esg.Overall, time.Since(start))

	return model.BatchResult{
		RowIndex:         idx,
		BorrowerName:     row.Name,
		CompositeScore:   composite.Total,
		Decision:         composite.Decision,
		ProcessingTimeMs: composite.ProcessingTimeMs,
	}
}

// Summarize computes the batch summary from the results themselves.
// TotalProcessed is the sum of the four buckets rather than an externally
// supplied row count, so the completeness invariant holds by construction.
func Summarize(results []model.BatchResult, elapsed time.Duration) model.BatchSummary {
	var s model.BatchSummary
	for _, r := range results {
		switch {
		case r.Error != "":
			s.ErrorCount++
		case r.Decision == decision.Approved:
			s.ApprovedCount++
		case r.Decision == decision.Review:
			s.ReviewCount++
		default:
			s.RejectedCount++
		}
	}
	s.TotalProcessed = s.ApprovedCount + s.ReviewCount + s.RejectedCount + s.ErrorCount
	s.TotalTimeMs = elapsed.Milliseconds()
	if s.TotalProcessed > 0 {
		s.AverageTimeMs = float64(s.TotalTimeMs) / float64(s.TotalProcessed)
	}
	return s
}

// errorResult builds the forced result for a failed row: zero score,
// REJECTED decision and the failure message, still counted in the summary.
func errorResult(idx int, name, msg string, elapsed time.Duration) model.BatchResult {
	return model.BatchResult{
		RowIndex:         idx,
		BorrowerName:     name,
		CompositeScore:   0,
		Decision:         decision.Rejected,
		ProcessingTimeMs: elapsed.Milliseconds(),
		Error:            msg,
	}
}

// parseAmount parses a numeric field defensively: surrounding whitespace,
// currency symbols and thousands separators are tolerated, and anything
// that still fails to parse defaults to zero.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
