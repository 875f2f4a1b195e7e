package ingest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/soltixdb/biotrend/internal/analytics"
	"github.com/soltixdb/biotrend/internal/config"
	"github.com/soltixdb/biotrend/internal/logging"
	"github.com/soltixdb/biotrend/internal/utils"
)

// WorkbookLoader reads metric series from an .xlsx export
type WorkbookLoader struct {
	input  config.InputConfig
	logger *logging.Logger
}

// NewWorkbookLoader creates a new WorkbookLoader
func NewWorkbookLoader(input config.InputConfig, logger *logging.Logger) *WorkbookLoader {
	return &WorkbookLoader{
		input:  input,
		logger: logger,
	}
}

// Load opens the configured workbook and extracts one series per metric, in metric order
func (l *WorkbookLoader) Load(ctx context.Context, metrics []config.MetricConfig) ([]analytics.Series, error) {
	f, err := excelize.OpenFile(l.input.Workbook)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", l.input.Workbook, err)
	}
	defer func() { _ = f.Close() }()

	return l.extract(ctx, f, metrics)
}

// LoadFrom reads a workbook from r
func (l *WorkbookLoader) LoadFrom(ctx context.Context, r io.Reader, metrics []config.MetricConfig) ([]analytics.Series, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	return l.extract(ctx, f, metrics)
}

func (l *WorkbookLoader) extract(ctx context.Context, f *excelize.File, metrics []config.MetricConfig) ([]analytics.Series, error) {
	sheets := make(map[string][][]string)
	out := make([]analytics.Series, 0, len(metrics))

	for _, m := range metrics {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, ok := sheets[m.Sheet]
		if !ok {
			if idx, _ := f.GetSheetIndex(m.Sheet); idx < 0 {
				return nil, fmt.Errorf("metric %q: %q: %w", m.Name, m.Sheet, ErrMissingSheet)
			}
			var err error
			// Raw values: formatted text would turn 12345 under "#,##0" into "12,345".
			rows, err = f.GetRows(m.Sheet, excelize.Options{RawCellValue: true})
			if err != nil {
				return nil, fmt.Errorf("failed to read sheet %s: %w", m.Sheet, err)
			}
			sheets[m.Sheet] = rows
		}

		series, err := l.aggregate(m, rows)
		if err != nil {
			return nil, err
		}

		if missingValue(series) {
			l.logger.Warn("Metric has no numeric values",
				"metric", m.Name,
				"sheet", m.Sheet,
				"column", m.Column)
		}
		l.logger.Debug("Metric loaded",
			"metric", m.Name,
			"sheet", m.Sheet,
			"years", series.Len())

		out = append(out, series)
	}

	return out, nil
}

// aggregate filters rows on the scope column and sums the metric column per year
func (l *WorkbookLoader) aggregate(m config.MetricConfig, rows [][]string) (analytics.Series, error) {
	if len(rows) == 0 {
		return analytics.Series{}, fmt.Errorf("metric %q: sheet %q is empty: %w", m.Name, m.Sheet, ErrMissingColumn)
	}

	header := rows[0]
	yearCol, err := columnIndex(header, l.input.YearColumn)
	if err != nil {
		return analytics.Series{}, fmt.Errorf("metric %q, sheet %q: %w", m.Name, m.Sheet, err)
	}
	valueCol, err := columnIndex(header, m.Column)
	if err != nil {
		return analytics.Series{}, fmt.Errorf("metric %q, sheet %q: %w", m.Name, m.Sheet, err)
	}
	scopeCol := -1
	if l.input.ScopeColumn != "" {
		if scopeCol, err = columnIndex(header, l.input.ScopeColumn); err != nil {
			return analytics.Series{}, fmt.Errorf("metric %q, sheet %q: %w", m.Name, m.Sheet, err)
		}
	}

	sums := newYearSums()
	for _, row := range rows[1:] {
		if scopeCol >= 0 && strings.TrimSpace(cell(row, scopeCol)) != l.input.ScopeValue {
			continue
		}
		year, ok := utils.ParseYear(cell(row, yearCol))
		if !ok {
			continue
		}
		value, ok := utils.ParseNumber(cell(row, valueCol))
		sums.add(year, value, ok)
	}

	return sums.series(m.Name), nil
}

// columnIndex finds a header by name, ignoring surrounding whitespace
func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%q: %w", name, ErrMissingColumn)
}

// cell returns row[i]; GetRows trims trailing empty cells
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
