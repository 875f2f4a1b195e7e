package forecast

import (
	"errors"
	"testing"

	"github.com/soltixdb/biotrend/internal/analytics"
)

func TestNaiveForecaster_Predict(t *testing.T) {
	forecaster := NewNaiveForecaster()
	if forecaster.Name() != "naive" {
		t.Errorf("Expected name 'naive', got '%s'", forecaster.Name())
	}

	history := analytics.Points{{Year: 2019, Value: 5}, {Year: 2020, Value: 9}}
	got, err := forecaster.Predict(history, 2025)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if got != 9 {
		t.Errorf("Expected last value 9, got %v", got)
	}
}

func TestNaiveForecaster_EmptyHistory(t *testing.T) {
	_, err := NewNaiveForecaster().Predict(analytics.Points{}, 2025)
	if !errors.Is(err, analytics.ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}
