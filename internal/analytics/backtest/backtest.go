// Package backtest runs walk-forward evaluations of yearly forecasters.
//
// Every fold trains on a strictly earlier prefix of the cleaned series and
// predicts the next observed year, so no fold sees its own target or any
// later point.
package backtest

import (
	"errors"
	"fmt"
	"math"

	"github.com/soltixdb/biotrend/internal/analytics"
	"github.com/soltixdb/biotrend/internal/analytics/forecast"
)

// ErrInvalidMinPoints is returned when minPoints is below 1.
var ErrInvalidMinPoints = errors.New("minPoints must be at least 1")

// Fold is a single one-step-ahead evaluation.
type Fold struct {
	Year      int     `json:"year"`
	TrainSize int     `json:"train_size"`
	Predicted float64 `json:"predicted"`
	Actual    float64 `json:"actual"`
	AbsError  float64 `json:"abs_error"`
}

// Result aggregates the folds of one walk-forward run.
// MAE, MAPE and RMSE are nil when no fold qualified.
type Result struct {
	Forecaster string   `json:"forecaster"`
	MinPoints  int      `json:"min_points"`
	Folds      []Fold   `json:"folds"`
	MAE        *float64 `json:"mae"`
	MAPE       *float64 `json:"mape"`
	RMSE       *float64 `json:"rmse"`
}

// N returns the number of scored folds.
func (r *Result) N() int {
	return len(r.Folds)
}

// Backtester evaluates a forecaster with an expanding training window.
type Backtester struct {
	forecaster forecast.Forecaster
}

// New creates a Backtester for the given forecaster
func New(forecaster forecast.Forecaster) *Backtester {
	return &Backtester{forecaster: forecaster}
}

// NewLinear creates a Backtester for the OLS trend forecaster
func NewLinear() *Backtester {
	return New(forecast.NewLinearRegressionForecaster())
}

// Run scores the forecaster for every index i in [minPoints, n) of the cleaned
// series, training on points [0, i). Too short a series is not an error: the
// result simply has no folds.
func (b *Backtester) Run(series analytics.Series, minPoints int) (*Result, error) {
	if minPoints < 1 {
		return nil, fmt.Errorf("series %q: minPoints %d: %w", series.Name, minPoints, ErrInvalidMinPoints)
	}

	points, err := series.Clean()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Forecaster: b.forecaster.Name(),
		MinPoints:  minPoints,
	}

	var actual, predicted []float64
	for i := minPoints; i < len(points); i++ {
		target := points[i]
		yhat, err := b.forecaster.Predict(points[:i:i], target.Year)
		if err != nil {
			return nil, fmt.Errorf("series %q, fold %d: %w", series.Name, target.Year, err)
		}

		result.Folds = append(result.Folds, Fold{
			Year:      target.Year,
			TrainSize: i,
			Predicted: yhat,
			Actual:    target.Value,
			AbsError:  math.Abs(target.Value - yhat),
		})

		actual = append(actual, target.Value)
		predicted = append(predicted, yhat)
	}

	if len(result.Folds) == 0 {
		return result, nil
	}

	mae := forecast.CalculateMAE(actual, predicted)
	mape := forecast.CalculateMAPE(actual, predicted)
	rmse := forecast.CalculateRMSE(actual, predicted)
	if !analytics.Finite(mae, mape, rmse) {
		return nil, fmt.Errorf("series %q: backtest errors overflowed: %w", series.Name, analytics.ErrNonFinite)
	}
	result.MAE = &mae
	result.MAPE = &mape
	result.RMSE = &rmse

	return result, nil
}
