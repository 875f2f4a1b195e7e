package forecast

import (
	"math"
	"testing"
)

func TestForecasterRegistry(t *testing.T) {
	// These algorithms are registered via init() in the forecast package
	algorithms := []string{"linear", "naive"}

	for _, algo := range algorithms {
		forecaster, err := GetForecaster(algo)
		if err != nil {
			t.Errorf("Forecaster '%s' not registered: %v", algo, err)
		} else if forecaster.Name() != algo {
			t.Errorf("Forecaster name mismatch: expected '%s', got '%s'", algo, forecaster.Name())
		}
	}

	if _, err := GetForecaster("holt_winters"); err == nil {
		t.Error("Expected error for unknown forecaster")
	}

	names := ListForecasters()
	if len(names) != 2 || names[0] != "linear" || names[1] != "naive" {
		t.Errorf("Expected sorted [linear naive], got %v", names)
	}
}

func TestCalculateMAE(t *testing.T) {
	tests := []struct {
		name      string
		actual    []float64
		predicted []float64
		want      float64
	}{
		{"perfect", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"mixed signs", []float64{10, 20}, []float64{12, 17}, 2.5},
		{"length mismatch", []float64{1, 2}, []float64{1}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateMAE(tt.actual, tt.predicted); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("CalculateMAE = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateMAPE(t *testing.T) {
	tests := []struct {
		name      string
		actual    []float64
		predicted []float64
		want      float64
	}{
		{"fraction not percent", []float64{100, 200}, []float64{110, 180}, 0.1},
		{"zero actual uses epsilon", []float64{0}, []float64{1e-9}, 1},
		{"negative actual uses epsilon", []float64{-1}, []float64{-1 + 1e-9}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateMAPE(tt.actual, tt.predicted); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("CalculateMAPE = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateRMSE(t *testing.T) {
	got := CalculateRMSE([]float64{0, 0}, []float64{3, 4})
	want := math.Sqrt(12.5)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("CalculateRMSE = %v, want %v", got, want)
	}
}
