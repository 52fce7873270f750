package batchcli

import (
	"os"
)

// ShowHelp prints usage information for the batch scoring tool.
func ShowHelp() {
	os.Stdout.WriteString(`Verdict Batch Scoring Tool
==========================

Scores a CSV of borrower rows through the full assessment pipeline and
prints a per-row result table plus a batch summary.

Usage:
  go run cmd/batchscore/main.go -input FILE [options]

Options:
  -input string
        CSV file of borrower rows (required)
  -output string
        Write results and summary as JSON to this file
  -chunk int
        Rows scored between yield points (default 10)
  -latency
        Simulate external provider latency
  -progress
        Print per-row progress to stderr
  -verbose
        Enable verbose logging
  -help
        Show this help message

CSV format (header required, columns matched by name):
  name,ssn,annual_income,total_assets,company,industry

Examples:
  # Score a file with default settings
  go run cmd/batchscore/main.go -input borrowers.csv

  # Score with progress output and a JSON report
  go run cmd/batchscore/main.go -input borrowers.csv -progress -output report.json
`)
}
