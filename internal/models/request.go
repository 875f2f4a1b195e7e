package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/soltixdb/biotrend/internal/analytics"
)

// AnalyzeRequest represents an analysis request over inline series
type AnalyzeRequest struct {
	Metrics []MetricInput `json:"metrics"`
}

// MetricInput is one named yearly series
type MetricInput struct {
	Name   string       `json:"name"`
	Points []PointInput `json:"points"`
}

// PointInput is one observation; a null value marks the year as missing
type PointInput struct {
	Year  int      `json:"year"`
	Value *float64 `json:"value"`
}

// Validate checks the request shape. Series content (length, duplicate
// years) is left to the analysis so it is reported per metric.
func (r *AnalyzeRequest) Validate() error {
	if len(r.Metrics) == 0 {
		return fmt.Errorf("metrics is required")
	}

	seen := make(map[string]bool, len(r.Metrics))
	for i, m := range r.Metrics {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("metrics[%d].name is required", i)
		}
		if seen[m.Name] {
			return fmt.Errorf("duplicate metric name: %s", m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}

// Series converts the request into analytics series, in request order
func (r *AnalyzeRequest) Series() []analytics.Series {
	out := make([]analytics.Series, len(r.Metrics))
	for i, m := range r.Metrics {
		points := make([]analytics.YearPoint, len(m.Points))
		for j, p := range m.Points {
			if p.Value == nil {
				points[j] = analytics.Missing(p.Year)
				continue
			}
			points[j] = analytics.YearPoint{Year: p.Year, Value: *p.Value}
		}
		out[i] = analytics.Series{Name: m.Name, Points: points}
	}
	return out
}

// MissingPoints counts null values across the request
func (r *AnalyzeRequest) MissingPoints() int {
	n := 0
	for _, m := range r.Metrics {
		for _, p := range m.Points {
			if p.Value == nil || math.IsNaN(*p.Value) {
				n++
			}
		}
	}
	return n
}
