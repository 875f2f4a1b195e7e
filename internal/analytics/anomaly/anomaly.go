// Package anomaly scores yearly series against their own spread and flags
// the points that sit too far from it.
package anomaly

import "math"

// DefaultThreshold is the absolute z-score above which a point is flagged.
const DefaultThreshold = 1.5

// AnomalyType represents the direction of a flagged deviation
type AnomalyType string

const (
	AnomalyTypeNone  AnomalyType = ""      // Within threshold or undefined score
	AnomalyTypeSpike AnomalyType = "spike" // Above the expected level
	AnomalyTypeDrop  AnomalyType = "drop"  // Below the expected level
)

// IsAnomaly reports whether |score| > threshold. Undefined (NaN) scores are never anomalies.
func IsAnomaly(score, threshold float64) bool {
	return math.Abs(score) > threshold
}

// Classify returns the direction of a flagged score, or AnomalyTypeNone.
func Classify(score, threshold float64) AnomalyType {
	if !IsAnomaly(score, threshold) {
		return AnomalyTypeNone
	}
	if score > 0 {
		return AnomalyTypeSpike
	}
	return AnomalyTypeDrop
}
