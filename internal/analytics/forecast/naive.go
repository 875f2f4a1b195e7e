package forecast

import (
	"fmt"

	"github.com/soltixdb/biotrend/internal/analytics"
)

// NaiveForecaster carries the last observed value forward.
type NaiveForecaster struct{}

// NewNaiveForecaster creates a new carry-forward forecaster
func NewNaiveForecaster() *NaiveForecaster {
	return &NaiveForecaster{}
}

func init() {
	RegisterForecaster("naive", NewNaiveForecaster())
}

// Name returns the algorithm name
func (f *NaiveForecaster) Name() string {
	return "naive"
}

// Predict returns the last value of the history regardless of year.
func (f *NaiveForecaster) Predict(history analytics.Points, year int) (float64, error) {
	last, ok := history.Last()
	if !ok {
		return 0, fmt.Errorf("naive forecast at %d: empty history: %w", year, analytics.ErrInsufficientData)
	}
	return last.Value, nil
}
