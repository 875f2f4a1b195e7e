package forecast

import (
	"github.com/soltixdb/biotrend/internal/analytics"
)

// Common test data and helpers for all forecast tests

// generateLinearPoints creates yearly points on y = slope*year + intercept
func generateLinearPoints(startYear, n int, slope, intercept float64) analytics.Points {
	points := make(analytics.Points, n)
	for i := 0; i < n; i++ {
		year := startYear + i
		points[i] = analytics.YearPoint{
			Year:  year,
			Value: slope*float64(year) + intercept,
		}
	}
	return points
}

// closedFormOLS computes slope and intercept with the textbook centred formulas
func closedFormOLS(points analytics.Points) (slope, intercept float64) {
	n := float64(len(points))
	meanX, meanY := 0.0, 0.0
	for _, p := range points {
		meanX += float64(p.Year)
		meanY += p.Value
	}
	meanX /= n
	meanY /= n

	sxy, sxx := 0.0, 0.0
	for _, p := range points {
		dx := float64(p.Year) - meanX
		sxy += dx * (p.Value - meanY)
		sxx += dx * dx
	}
	slope = sxy / sxx
	return slope, meanY - slope*meanX
}
