package batchcli

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/halcyonfi/verdict/internal/domain/model"
)

// Expected column names. Order in the file does not matter; columns are
// matched by header name.
const (
	colName         = "name"
	colSSN          = "ssn"
	colAnnualIncome = "annual_income"
	colTotalAssets  = "total_assets"
	colCompany      = "company"
	colIndustry     = "industry"
)

// LoadRows reads a borrower CSV into batch rows. The first record must be a
// header; unknown columns are ignored and missing optional columns leave
// the field empty.
func LoadRows(path string) ([]model.BatchRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	// Rows may omit trailing columns.
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	index, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]model.BatchRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, model.BatchRow{
			Name:         field(record, index, colName),
			SSN:          field(record, index, colSSN),
			AnnualIncome: field(record, index, colAnnualIncome),
			TotalAssets:  field(record, index, colTotalAssets),
			Company:      field(record, index, colCompany),
			Industry:     field(record, index, colIndustry),
		})
	}
	return rows, nil
}

// headerIndex maps normalized column names to positions. Name and SSN are
// the only required columns; everything else degrades to empty fields.
func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{colName, colSSN} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrBadHeader, required)
		}
	}
	return index, nil
}

func field(record []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
