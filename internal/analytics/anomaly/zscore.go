package anomaly

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ZeroVariancePolicy selects what Standardize does when the sample standard
// deviation is not strictly positive (constant input, or a single defined value).
type ZeroVariancePolicy int

const (
	// ZeroScores sets every defined score to 0.
	ZeroScores ZeroVariancePolicy = iota
	// UnitDivisor keeps centring on the mean and divides by FallbackDivisor.
	UnitDivisor
)

// FallbackDivisor is the divisor used by UnitDivisor.
const FallbackDivisor = 1.0

// String returns the policy name
func (p ZeroVariancePolicy) String() string {
	switch p {
	case ZeroScores:
		return "zero_scores"
	case UnitDivisor:
		return "unit_divisor"
	default:
		return "unknown"
	}
}

// GuardedDivisor returns the divisor to standardize with. ok is false when
// the policy asks for all-zero scores instead of a division.
func GuardedDivisor(stdDev float64, policy ZeroVariancePolicy) (divisor float64, ok bool) {
	if stdDev > 0 {
		return stdDev, true
	}
	if policy == UnitDivisor {
		return FallbackDivisor, true
	}
	return 0, false
}

// Standardize returns (v - mean) / std for every value, using the sample
// standard deviation (n-1). NaN entries are left out of mean and std and
// stay NaN in the output, so positions are preserved.
func Standardize(values []float64, policy ZeroVariancePolicy) []float64 {
	out := make([]float64, len(values))

	defined := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	if len(defined) == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}

	mean, stdDev := stat.MeanStdDev(defined, nil)
	divisor, ok := GuardedDivisor(stdDev, policy)

	for i, v := range values {
		switch {
		case math.IsNaN(v):
			out[i] = math.NaN()
		case !ok:
			out[i] = 0
		default:
			out[i] = (v - mean) / divisor
		}
	}
	return out
}
