package forecast

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/soltixdb/biotrend/internal/analytics"
)

// Line is a fitted degree-1 trend on raw (uncentered) years.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At evaluates the line at year.
func (l Line) At(year float64) float64 {
	return l.Slope*year + l.Intercept
}

// FitLine fits an ordinary least squares line to (year, value).
// Years are used as-is so the coefficients are directly comparable across runs.
func FitLine(points analytics.Points) (Line, error) {
	if len(points) < 2 {
		return Line{}, fmt.Errorf("cannot fit a line: need 2 points, have %d: %w",
			len(points), analytics.ErrInsufficientData)
	}

	// stat.LinearRegression returns (intercept, slope) for y = alpha + beta*x
	alpha, beta := stat.LinearRegression(points.Years(), points.Values(), nil, false)
	return Line{Slope: beta, Intercept: alpha}, nil
}

// LinearRegressionForecaster extrapolates the OLS trend of the history.
type LinearRegressionForecaster struct{}

// NewLinearRegressionForecaster creates a new Linear Regression forecaster
func NewLinearRegressionForecaster() *LinearRegressionForecaster {
	return &LinearRegressionForecaster{}
}

func init() {
	RegisterForecaster("linear", NewLinearRegressionForecaster())
}

// Name returns the algorithm name
func (f *LinearRegressionForecaster) Name() string {
	return "linear"
}

// Predict evaluates the history's trend line at year.
// A single point carries no slope, so its value is returned unchanged.
func (f *LinearRegressionForecaster) Predict(history analytics.Points, year int) (float64, error) {
	switch len(history) {
	case 0:
		return 0, fmt.Errorf("linear forecast at %d: empty history: %w", year, analytics.ErrInsufficientData)
	case 1:
		return history[0].Value, nil
	}

	line, err := FitLine(history)
	if err != nil {
		return 0, err
	}
	return line.At(float64(year)), nil
}
