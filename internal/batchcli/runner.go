package batchcli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	app "github.com/halcyonfi/verdict/internal/app"
	"github.com/halcyonfi/verdict/internal/domain/model"
	"github.com/halcyonfi/verdict/pkg/logger"
)

// Simulated provider latency bounds used when -latency is set.
const (
	latencyMin = 500 * time.Millisecond
	latencyMax = 1500 * time.Millisecond
)

const reportFilePermission = 0600

// Run loads the input CSV, scores every row through the assessment
// pipeline, and prints a per-row table plus the batch summary.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get()

	rows, err := LoadRows(cfg.InputFile)
	if err != nil {
		return err
	}
	log.Info(ctx, "loaded input file",
		logger.String("file", cfg.InputFile),
		logger.Int("rows", len(rows)))

	opts := []app.Option{
		app.WithLogger(log.Named("batchscore")),
		app.WithChunkSize(cfg.ChunkSize),
	}
	if cfg.SimulateLatency {
		opts = append(opts, app.WithProviderLatencyRange(latencyMin, latencyMax))
	}
	if cfg.Progress {
		opts = append(opts, app.WithBatchProgress(func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rscored %d/%d rows", done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		}))
	}

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	start := time.Now()
	results, summary := svc.ProcessBatchSync(ctx, rows)
	log.Info(ctx, "batch complete",
		logger.Int("processed", summary.TotalProcessed),
		logger.Int64("elapsedMs", time.Since(start).Milliseconds()))

	printResults(results, summary)

	if cfg.OutputFile != "" {
		if err := writeReport(cfg.OutputFile, results, summary); err != nil {
			return err
		}
		log.Info(ctx, "report written", logger.String("file", cfg.OutputFile))
	}
	return nil
}

// printResults renders the per-row table and the summary block.
func printResults(results []model.BatchResult, summary model.BatchSummary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROW\tBORROWER\tSCORE\tDECISION\tTIME(MS)\tERROR")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%d\t%s\n",
			r.RowIndex, r.BorrowerName, r.CompositeScore, r.Decision, r.ProcessingTimeMs, r.Error)
	}
	_ = w.Flush()

	fmt.Printf("\nprocessed: %d  approved: %d  review: %d  rejected: %d  errors: %d\n",
		summary.TotalProcessed, summary.ApprovedCount, summary.ReviewCount,
		summary.RejectedCount, summary.ErrorCount)
	fmt.Printf("total: %dms  avg/row: %.2fms\n", summary.TotalTimeMs, summary.AverageTimeMs)
}

// report is the JSON shape written by -output.
type report struct {
	Results []model.BatchResult `json:"results"`
	Summary model.BatchSummary  `json:"summary"`
}

func writeReport(path string, results []model.BatchResult, summary model.BatchSummary) error {
	data, err := json.MarshalIndent(report{Results: results, Summary: summary}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, reportFilePermission); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
