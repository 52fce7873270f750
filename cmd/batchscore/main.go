package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/halcyonfi/verdict/internal/batchcli"
	"github.com/halcyonfi/verdict/pkg/logger"
)

func main() {
	var (
		inputFile  = flag.String("input", "", "CSV file of borrower rows (required)")
		outputFile = flag.String("output", "", "Write results and summary as JSON to this file")
		chunkSize  = flag.Int("chunk", batchcli.DefaultChunkSize, "Rows scored between yield points")
		latency    = flag.Bool("latency", false, "Simulate external provider latency")
		progress   = flag.Bool("progress", false, "Print per-row progress to stderr")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help || *inputFile == "" {
		batchcli.ShowHelp()
		if *inputFile == "" && !*help {
			os.Exit(2)
		}
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &batchcli.Config{
		InputFile:       *inputFile,
		OutputFile:      *outputFile,
		ChunkSize:       *chunkSize,
		SimulateLatency: *latency,
		Progress:        *progress,
		Verbose:         *verbose,
	}

	if err := batchcli.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "batch scoring failed", logger.Error(err))
		os.Exit(1)
	}
}
