package trend

import (
	"fmt"
	"math"

	"github.com/soltixdb/biotrend/internal/analytics"
	"github.com/soltixdb/biotrend/internal/analytics/anomaly"
	"github.com/soltixdb/biotrend/internal/analytics/forecast"
)

// DefaultForecastYear is the fixed year both forecasts are evaluated at.
const DefaultForecastYear = 2025

// Point holds the fitted diagnostics for one observed year.
// Pointer fields are nil where the quantity is undefined (the first year,
// or a growth rate over a zero base).
type Point struct {
	Year       int      `json:"year"`
	Value      float64  `json:"value"`
	PredLinear float64  `json:"pred_linear"`
	PredNaive  *float64 `json:"pred_naive"`
	Residual   float64  `json:"residual"`
	ResidualZ  float64  `json:"residual_z"`
	YoY        *float64 `json:"yoy"`
	YoYZ       *float64 `json:"yoy_z"`
}

// Fit is the outcome of fitting one series.
type Fit struct {
	Points         []Point
	Line           forecast.Line
	ForecastYear   int
	ForecastLinear float64
	ForecastNaive  float64
}

// Fitter fits linear trends. The zero value forecasts at year 0; use NewFitter.
type Fitter struct {
	ForecastYear int
}

// NewFitter creates a Fitter forecasting at DefaultForecastYear
func NewFitter() *Fitter {
	return &Fitter{ForecastYear: DefaultForecastYear}
}

// Fit cleans the series and fits it. It fails with analytics.ErrInsufficientData
// when fewer than two valid points remain, and with analytics.ErrNonFinite when
// values are so large that the fit overflows.
func (f *Fitter) Fit(series analytics.Series) (*Fit, error) {
	points, err := series.Clean()
	if err != nil {
		return nil, err
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("series %q: need at least 2 valid points, have %d: %w",
			series.Name, len(points), analytics.ErrInsufficientData)
	}

	line, err := forecast.FitLine(points)
	if err != nil {
		return nil, fmt.Errorf("series %q: %w", series.Name, err)
	}

	n := len(points)
	residuals := make([]float64, n)
	growth := make([]float64, n)
	out := make([]Point, n)

	for i, p := range points {
		pred := line.At(float64(p.Year))
		residuals[i] = p.Value - pred
		growth[i] = math.NaN()

		out[i] = Point{
			Year:       p.Year,
			Value:      p.Value,
			PredLinear: pred,
			Residual:   residuals[i],
		}

		if i > 0 {
			prev := points[i-1].Value
			out[i].PredNaive = analytics.OptionalFloat(prev)
			growth[i] = yearOverYear(p.Value, prev)
		}
	}

	residualZ := anomaly.Standardize(residuals, anomaly.ZeroScores)
	growthZ := anomaly.Standardize(growth, anomaly.UnitDivisor)

	for i := range out {
		out[i].ResidualZ = residualZ[i]
		out[i].YoY = analytics.OptionalFloat(growth[i])
		out[i].YoYZ = analytics.OptionalFloat(growthZ[i])
	}

	last, _ := points.Last()
	fit := &Fit{
		Points:         out,
		Line:           line,
		ForecastYear:   f.ForecastYear,
		ForecastLinear: line.At(float64(f.ForecastYear)),
		ForecastNaive:  last.Value,
	}
	if !fit.finite() {
		return nil, fmt.Errorf("series %q: fit overflowed: %w", series.Name, analytics.ErrNonFinite)
	}
	return fit, nil
}

func (f *Fit) finite() bool {
	if !analytics.Finite(f.Line.Slope, f.Line.Intercept, f.ForecastLinear, f.ForecastNaive) {
		return false
	}
	for _, p := range f.Points {
		if !analytics.Finite(p.PredLinear, p.Residual, p.ResidualZ) {
			return false
		}
	}
	return true
}

// yearOverYear returns the relative change from prev to cur, NaN over a zero base.
func yearOverYear(cur, prev float64) float64 {
	if prev == 0 {
		return math.NaN()
	}
	return (cur - prev) / prev
}
