package ingest

import (
	"errors"
	"math"
	"sort"

	"github.com/soltixdb/biotrend/internal/analytics"
)

var (
	// ErrMissingSheet is returned when a configured sheet is absent from the workbook
	ErrMissingSheet = errors.New("sheet not found")

	// ErrMissingColumn is returned when a required header cannot be located
	ErrMissingColumn = errors.New("column not found")
)

// yearSums accumulates per-year totals for one metric
type yearSums struct {
	totals map[int]float64
	seen   map[int]bool // year has at least one numeric entry
}

func newYearSums() *yearSums {
	return &yearSums{
		totals: make(map[int]float64),
		seen:   make(map[int]bool),
	}
}

// add records an entry for year; ok is false for a blank or non-numeric cell
func (s *yearSums) add(year int, value float64, ok bool) {
	if _, exists := s.totals[year]; !exists {
		s.totals[year] = 0
	}
	if ok {
		s.totals[year] += value
		s.seen[year] = true
	}
}

// series returns the totals in ascending year order
func (s *yearSums) series(name string) analytics.Series {
	years := make([]int, 0, len(s.totals))
	for y := range s.totals {
		years = append(years, y)
	}
	sort.Ints(years)

	points := make([]analytics.YearPoint, len(years))
	for i, y := range years {
		if !s.seen[y] {
			points[i] = analytics.Missing(y)
			continue
		}
		points[i] = analytics.YearPoint{Year: y, Value: s.totals[y]}
	}

	return analytics.Series{Name: name, Points: points}
}

// missingValue reports whether every point of s is missing
func missingValue(s analytics.Series) bool {
	for _, p := range s.Points {
		if !math.IsNaN(p.Value) {
			return false
		}
	}
	return true
}
