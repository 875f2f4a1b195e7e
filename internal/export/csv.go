// Package export writes analysis results to CSV files and message queues.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/soltixdb/biotrend/internal/config"
	"github.com/soltixdb/biotrend/internal/services"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PredictionsHeader returns the predictions table header
func PredictionsHeader(yearColumn string) []string {
	return []string{
		yearColumn, "value", "pred_linear", "pred_naive", "residual", "residual_z",
		"yoy", "yoy_z", "metric", "is_anomaly_resid", "is_anomaly_yoy",
	}
}

// SummaryHeader returns the summary table header for the given forecast year
func SummaryHeader(forecastYear int) []string {
	return []string{
		"metric", "slope_per_year",
		fmt.Sprintf("forecast_%d_linear", forecastYear),
		fmt.Sprintf("forecast_%d_naive", forecastYear),
		"backtest_MAE", "backtest_MAPE", "backtest_n_years",
	}
}

// CSVWriter writes the two result tables
type CSVWriter struct {
	YearColumn   string
	ForecastYear int
	BOM          bool
}

// NewCSVWriter creates a CSVWriter from configuration
func NewCSVWriter(cfg *config.Config) *CSVWriter {
	return &CSVWriter{
		YearColumn:   cfg.Input.YearColumn,
		ForecastYear: cfg.Analysis.ForecastYear,
		BOM:          cfg.Output.BOM,
	}
}

// WriteFiles writes predictions and summaries to their configured paths
func (w *CSVWriter) WriteFiles(result *services.Result, predictionsPath, summaryPath string) error {
	if err := writeFile(predictionsPath, func(out io.Writer) error {
		return w.WritePredictions(out, result.Predictions)
	}); err != nil {
		return err
	}

	return writeFile(summaryPath, func(out io.Writer) error {
		return w.WriteSummaries(out, result.Summaries)
	})
}

// WritePredictions writes the predictions table; undefined values are empty cells
func (w *CSVWriter) WritePredictions(out io.Writer, rows []services.PredictionRow) error {
	cw, err := w.begin(out, PredictionsHeader(w.YearColumn))
	if err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Year),
			formatFloat(r.Value),
			formatFloat(r.PredLinear),
			formatOptional(r.PredNaive),
			formatFloat(r.Residual),
			formatFloat(r.ResidualZ),
			formatOptional(r.YoY),
			formatOptional(r.YoYZ),
			r.Metric,
			formatFlag(r.IsAnomalyResid),
			formatFlag(r.IsAnomalyYoY),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write prediction row: %w", err)
		}
	}

	return flush(cw)
}

// WriteSummaries writes the summary table
func (w *CSVWriter) WriteSummaries(out io.Writer, rows []services.SummaryRow) error {
	cw, err := w.begin(out, SummaryHeader(w.ForecastYear))
	if err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.Metric,
			formatFloat(r.SlopePerYear),
			formatFloat(r.ForecastLinear),
			formatFloat(r.ForecastNaive),
			formatOptional(r.BacktestMAE),
			formatOptional(r.BacktestMAPE),
			strconv.Itoa(r.BacktestNYears),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	return flush(cw)
}

func (w *CSVWriter) begin(out io.Writer, header []string) (*csv.Writer, error) {
	if w.BOM {
		if _, err := out.Write(utf8BOM); err != nil {
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return cw, nil
}

func flush(cw *csv.Writer) error {
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
