// Package dataset loads the payment dataset and aggregates it.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultColumn is the column holding payment methods.
const DefaultColumn = "payment"

// ErrColumnNotFound reports a CSV header without the payment column.
var ErrColumnNotFound = errors.New("payment column not found")

// ParseCSV reads records from the named column of a CSV stream.
// Blank cells are skipped.
func ParseCSV(r io.Reader, column string) ([]string, error) {
	if column == "" {
		column = DefaultColumn
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv has no header row")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	idx := columnIndex(header, column)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q in %v", ErrColumnNotFound, column, header)
	}

	var records []string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		if idx >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[idx])
		if value == "" {
			continue
		}
		records = append(records, value)
	}
	return records, nil
}

func columnIndex(header []string, column string) int {
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		if strings.TrimSpace(name) == column {
			return i
		}
	}
	return -1
}
