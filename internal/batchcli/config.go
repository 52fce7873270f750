// Package batchcli implements the offline CSV batch scoring tool.
package batchcli

// Default configuration constants.
const (
	DefaultChunkSize = 10
)

// Config holds the CLI configuration.
type Config struct {
	// InputFile is the CSV file of borrower rows to score.
	InputFile string

	// OutputFile, when set, receives the results and summary as JSON.
	OutputFile string

	// ChunkSize sets how many rows are scored between yield points.
	ChunkSize int

	// SimulateLatency enables the provider latency decorator to exercise
	// the pipeline under realistic bureau round-trip times.
	SimulateLatency bool

	// Progress enables per-row progress output on stderr.
	Progress bool

	// Verbose enables debug logging.
	Verbose bool
}
