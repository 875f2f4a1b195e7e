// Package analytics provides the common types shared by the trend, forecast,
// anomaly and backtest packages: yearly points and named series.
package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrInsufficientData is returned when a series has too few valid points to fit a line.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDuplicateYear is returned when a series holds two valid values for the same year.
	ErrDuplicateYear = errors.New("duplicate year in series")

	// ErrNonFinite is returned when a computation over finite inputs overflows to NaN or Inf.
	ErrNonFinite = errors.New("non-finite result")
)

// Finite reports whether every value is neither NaN nor infinite.
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// YearPoint is a single yearly observation. A missing value is NaN.
type YearPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Valid reports whether the point carries a usable numeric value.
func (p YearPoint) Valid() bool {
	return !math.IsNaN(p.Value) && !math.IsInf(p.Value, 0)
}

// Missing returns a point for a year without a value.
func Missing(year int) YearPoint {
	return YearPoint{Year: year, Value: math.NaN()}
}

// Series is a named sequence of yearly points as delivered by ingestion.
// Points may be unsorted and may contain missing values; Clean prepares them
// for fitting.
type Series struct {
	Name   string
	Points []YearPoint
}

// NewSeries builds a series from parallel year/value slices.
func NewSeries(name string, years []int, values []float64) (Series, error) {
	if len(years) != len(values) {
		return Series{}, fmt.Errorf("series %q: years and values must have the same length (%d != %d)",
			name, len(years), len(values))
	}
	points := make([]YearPoint, len(years))
	for i := range years {
		points[i] = YearPoint{Year: years[i], Value: values[i]}
	}
	return Series{Name: name, Points: points}, nil
}

// Len returns the number of points handed over, missing ones included.
func (s Series) Len() int {
	return len(s.Points)
}

// Clean drops missing values and returns the remaining points sorted by year.
// The receiver is not modified.
func (s Series) Clean() (Points, error) {
	out := make(Points, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Valid() {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Year < out[j].Year
	})

	for i := 1; i < len(out); i++ {
		if out[i].Year == out[i-1].Year {
			return nil, fmt.Errorf("series %q, year %d: %w", s.Name, out[i].Year, ErrDuplicateYear)
		}
	}
	return out, nil
}

// Points is an ordered run of valid yearly observations.
type Points []YearPoint

// Years extracts the years as float64, ready for regression.
func (ps Points) Years() []float64 {
	years := make([]float64, len(ps))
	for i, p := range ps {
		years[i] = float64(p.Year)
	}
	return years
}

// Values extracts just the values.
func (ps Points) Values() []float64 {
	values := make([]float64, len(ps))
	for i, p := range ps {
		values[i] = p.Value
	}
	return values
}

// Last returns the most recent point and false when the run is empty.
func (ps Points) Last() (YearPoint, bool) {
	if len(ps) == 0 {
		return YearPoint{}, false
	}
	return ps[len(ps)-1], true
}

// OptionalFloat returns nil for NaN and ±Inf, otherwise a pointer to v.
// Result rows use it for values that are undefined rather than zero.
func OptionalFloat(v float64) *float64 {
	if !Finite(v) {
		return nil
	}
	return &v
}
