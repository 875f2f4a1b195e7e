package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/soltixdb/biotrend/internal/analytics"
	"github.com/soltixdb/biotrend/internal/analytics/anomaly"
	"github.com/soltixdb/biotrend/internal/analytics/backtest"
	"github.com/soltixdb/biotrend/internal/analytics/trend"
	"github.com/soltixdb/biotrend/internal/config"
	"github.com/soltixdb/biotrend/internal/logging"
	"github.com/soltixdb/biotrend/internal/utils"
)

// PredictionRow is one (metric, year) line of the predictions table
type PredictionRow struct {
	Year           int      `json:"year"`
	Value          float64  `json:"value"`
	PredLinear     float64  `json:"pred_linear"`
	PredNaive      *float64 `json:"pred_naive"`
	Residual       float64  `json:"residual"`
	ResidualZ      float64  `json:"residual_z"`
	YoY            *float64 `json:"yoy"`
	YoYZ           *float64 `json:"yoy_z"`
	Metric         string   `json:"metric"`
	IsAnomalyResid bool     `json:"is_anomaly_resid"`
	IsAnomalyYoY   bool     `json:"is_anomaly_yoy"`
}

// SummaryRow is the per-metric line of the model summary table
type SummaryRow struct {
	Metric         string   `json:"metric"`
	SlopePerYear   float64  `json:"slope_per_year"`
	Intercept      float64  `json:"intercept"`
	ForecastYear   int      `json:"forecast_year"`
	ForecastLinear float64  `json:"forecast_linear"`
	ForecastNaive  float64  `json:"forecast_naive"`
	BacktestMAE    *float64 `json:"backtest_mae"`
	BacktestMAPE   *float64 `json:"backtest_mape"`
	BacktestNYears int      `json:"backtest_n_years"`
}

// MetricFailure records a metric that produced no rows
type MetricFailure struct {
	Metric  string `json:"metric"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result holds the two ordered output tables of one run.
// Predictions are ordered by metric then year, summaries by metric.
type Result struct {
	RunID       string          `json:"run_id"`
	Predictions []PredictionRow `json:"predictions"`
	Summaries   []SummaryRow    `json:"summaries"`
	Failures    []MetricFailure `json:"failures"`
}

// MinPointsFor returns the walk-forward minimum history for a series with
// rawLength entries, missing values included.
func MinPointsFor(rawLength int) int {
	return min(utils.MaxMinPoints, max(utils.MinMinPoints, rawLength-utils.HeldOutYears))
}

// AnalysisService runs the trend, anomaly and backtest pipeline over a set of metrics
type AnalysisService struct {
	logger     *logging.Logger
	fitter     *trend.Fitter
	backtester *backtest.Backtester
	threshold  float64
	workers    int
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(logger *logging.Logger, cfg config.AnalysisConfig) *AnalysisService {
	fitter := trend.NewFitter()
	if cfg.ForecastYear != 0 {
		fitter.ForecastYear = cfg.ForecastYear
	}

	threshold := cfg.AnomalyThreshold
	if threshold <= 0 {
		threshold = anomaly.DefaultThreshold
	}

	return &AnalysisService{
		logger:     logger,
		fitter:     fitter,
		backtester: backtest.NewLinear(),
		threshold:  threshold,
		workers:    max(1, cfg.Workers),
	}
}

// metricOutcome is the batch one metric contributes to a Result
type metricOutcome struct {
	predictions []PredictionRow
	summary     *SummaryRow
	failure     *MetricFailure
}

// Run analyses every series independently. A metric that fails is reported
// in Result.Failures and does not affect its siblings. The only error returned
// is context cancellation.
func (s *AnalysisService) Run(ctx context.Context, series []analytics.Series) (*Result, error) {
	startExec := time.Now()
	runID := logging.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := s.logger.With("run_id", runID)

	outcomes := make([]metricOutcome, len(series))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range series {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = s.analyzeMetric(logger, series[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis run %s: %w", runID, err)
	}

	result := &Result{
		RunID:       runID,
		Predictions: []PredictionRow{},
		Summaries:   []SummaryRow{},
		Failures:    []MetricFailure{},
	}
	for _, o := range outcomes {
		result.Predictions = append(result.Predictions, o.predictions...)
		if o.summary != nil {
			result.Summaries = append(result.Summaries, *o.summary)
		}
		if o.failure != nil {
			result.Failures = append(result.Failures, *o.failure)
		}
	}

	logger.Info("Analysis completed",
		"metrics", len(series),
		"predictions", len(result.Predictions),
		"failures", len(result.Failures),
		"duration", time.Since(startExec))

	return result, nil
}

func (s *AnalysisService) analyzeMetric(logger *logging.Logger, series analytics.Series) metricOutcome {
	fit, err := s.fitter.Fit(series)
	if err != nil {
		return s.failed(logger, series.Name, err)
	}

	minPoints := MinPointsFor(series.Len())
	bt, err := s.backtester.Run(series, minPoints)
	if err != nil {
		return s.failed(logger, series.Name, err)
	}

	rows := make([]PredictionRow, len(fit.Points))
	for i, p := range fit.Points {
		rows[i] = PredictionRow{
			Year:           p.Year,
			Value:          p.Value,
			PredLinear:     p.PredLinear,
			PredNaive:      p.PredNaive,
			Residual:       p.Residual,
			ResidualZ:      p.ResidualZ,
			YoY:            p.YoY,
			YoYZ:           p.YoYZ,
			Metric:         series.Name,
			IsAnomalyResid: anomaly.IsAnomaly(p.ResidualZ, s.threshold),
			IsAnomalyYoY:   p.YoYZ != nil && anomaly.IsAnomaly(*p.YoYZ, s.threshold),
		}

		if rows[i].IsAnomalyResid {
			logger.Debug("Residual anomaly",
				"metric", series.Name,
				"year", p.Year,
				"residual_z", p.ResidualZ,
				"type", anomaly.Classify(p.ResidualZ, s.threshold))
		}
		if rows[i].IsAnomalyYoY {
			logger.Debug("Growth anomaly",
				"metric", series.Name,
				"year", p.Year,
				"yoy_z", *p.YoYZ,
				"type", anomaly.Classify(*p.YoYZ, s.threshold))
		}
	}

	logger.Debug("Metric analysed",
		"metric", series.Name,
		"points", len(rows),
		"slope", fit.Line.Slope,
		"min_points", minPoints,
		"backtest_folds", bt.N())

	return metricOutcome{
		predictions: rows,
		summary: &SummaryRow{
			Metric:         series.Name,
			SlopePerYear:   fit.Line.Slope,
			Intercept:      fit.Line.Intercept,
			ForecastYear:   fit.ForecastYear,
			ForecastLinear: fit.ForecastLinear,
			ForecastNaive:  fit.ForecastNaive,
			BacktestMAE:    bt.MAE,
			BacktestMAPE:   bt.MAPE,
			BacktestNYears: bt.N(),
		},
	}
}

func (s *AnalysisService) failed(logger *logging.Logger, metric string, err error) metricOutcome {
	se := metricError(metric, err)
	logger.Warn("Metric skipped",
		"metric", metric,
		"code", se.Code,
		"error", err)

	return metricOutcome{
		failure: &MetricFailure{
			Metric:  metric,
			Code:    se.Code,
			Message: se.Message,
		},
	}
}
