package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/soltixdb/biotrend/internal/analytics"
	"github.com/soltixdb/biotrend/internal/utils"
)

// CSV column names of the long format
const (
	ColumnMetric = "metric"
	ColumnYear   = "year"
	ColumnValue  = "value"
)

const utf8BOM = "\ufeff"

// LoadCSV reads a long-format CSV file (metric,year,value).
// Series come back in order of first appearance; repeated (metric, year)
// rows are summed and blank values are missing.
func LoadCSV(ctx context.Context, path string) ([]analytics.Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return ReadCSV(ctx, file)
}

// ReadCSV reads long-format series from r
func ReadCSV(ctx context.Context, r io.Reader) ([]analytics.Series, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	cols := make(map[string]int, 3)
	for _, name := range []string{ColumnMetric, ColumnYear, ColumnValue} {
		idx := -1
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("csv header %q: %w", name, ErrMissingColumn)
		}
		cols[name] = idx
	}

	var order []string
	sums := make(map[string]*yearSums)

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		metric := strings.TrimSpace(cell(record, cols[ColumnMetric]))
		if metric == "" {
			continue
		}
		year, ok := utils.ParseYear(cell(record, cols[ColumnYear]))
		if !ok {
			return nil, fmt.Errorf("csv line %d: invalid year %q", line, cell(record, cols[ColumnYear]))
		}

		acc, exists := sums[metric]
		if !exists {
			acc = newYearSums()
			sums[metric] = acc
			order = append(order, metric)
		}
		value, ok := utils.ParseNumber(cell(record, cols[ColumnValue]))
		acc.add(year, value, ok)
	}

	out := make([]analytics.Series, len(order))
	for i, name := range order {
		out[i] = sums[name].series(name)
	}
	return out, nil
}
