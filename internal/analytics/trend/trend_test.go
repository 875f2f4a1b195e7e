package trend

import (
	"errors"
	"math"
	"testing"

	"github.com/soltixdb/biotrend/internal/analytics"
)

func mustSeries(t *testing.T, name string, years []int, values []float64) analytics.Series {
	t.Helper()
	s, err := analytics.NewSeries(name, years, values)
	if err != nil {
		t.Fatalf("NewSeries failed: %v", err)
	}
	return s
}

func TestFitter_ReferenceScenario(t *testing.T) {
	series := mustSeries(t, "surface", []int{2015, 2016, 2017, 2018}, []float64{100, 110, 120, 130})

	fit, err := NewFitter().Fit(series)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if math.Abs(fit.Line.Slope-10) > 1e-9 {
		t.Errorf("Expected slope 10, got %v", fit.Line.Slope)
	}
	if math.Abs(fit.Line.Intercept+19850) > 1e-6 {
		t.Errorf("Expected intercept -19850, got %v", fit.Line.Intercept)
	}
	if math.Abs(fit.ForecastLinear-400) > 1e-6 {
		t.Errorf("Expected forecast 400, got %v", fit.ForecastLinear)
	}
	if fit.ForecastNaive != 130 {
		t.Errorf("Expected naive forecast 130, got %v", fit.ForecastNaive)
	}
	if fit.ForecastYear != DefaultForecastYear {
		t.Errorf("Expected forecast year %d, got %d", DefaultForecastYear, fit.ForecastYear)
	}

	wantYoY := []float64{0.10, 10.0 / 110.0, 10.0 / 120.0}
	if fit.Points[0].YoY != nil {
		t.Errorf("Expected nil yoy for first year, got %v", *fit.Points[0].YoY)
	}
	for i, want := range wantYoY {
		got := fit.Points[i+1].YoY
		if got == nil {
			t.Fatalf("yoy[%d] is nil", i+1)
		}
		if math.Abs(*got-want) > 1e-12 {
			t.Errorf("yoy[%d] = %v, want %v", i+1, *got, want)
		}
	}
}

func TestFitter_NaiveAndYoYDefinitions(t *testing.T) {
	values := []float64{50, 65, 40, 90, 91}
	series := mustSeries(t, "herd", []int{2010, 2011, 2012, 2013, 2014}, values)

	fit, err := NewFitter().Fit(series)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	first := fit.Points[0]
	if first.PredNaive != nil || first.YoY != nil || first.YoYZ != nil {
		t.Error("Expected pred_naive, yoy and yoy_z undefined for the first year")
	}

	for i := 1; i < len(values); i++ {
		p := fit.Points[i]
		if p.PredNaive == nil || *p.PredNaive != values[i-1] {
			t.Errorf("pred_naive[%d] = %v, want %v", i, p.PredNaive, values[i-1])
		}
		want := (values[i] - values[i-1]) / values[i-1]
		if p.YoY == nil || *p.YoY != want {
			t.Errorf("yoy[%d] = %v, want %v", i, p.YoY, want)
		}
		if p.YoYZ == nil {
			t.Errorf("yoy_z[%d] should be defined", i)
		}
	}

	for i, p := range fit.Points {
		if math.Abs(p.PredLinear-fit.Line.At(float64(p.Year))) > 1e-9 {
			t.Errorf("pred_linear[%d] does not lie on the fitted line", i)
		}
		if math.Abs(p.Residual-(p.Value-p.PredLinear)) > 1e-9 {
			t.Errorf("residual[%d] != value - pred_linear", i)
		}
	}
}

func TestFitter_ResidualZMatchesSampleStd(t *testing.T) {
	series := mustSeries(t, "noisy", []int{2001, 2002, 2003, 2004, 2005, 2006},
		[]float64{10, 14, 11, 19, 15, 24})

	fit, err := NewFitter().Fit(series)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	n := float64(len(fit.Points))
	mean := 0.0
	for _, p := range fit.Points {
		mean += p.Residual
	}
	mean /= n
	ss := 0.0
	for _, p := range fit.Points {
		ss += (p.Residual - mean) * (p.Residual - mean)
	}
	std := math.Sqrt(ss / (n - 1))

	for i, p := range fit.Points {
		want := (p.Residual - mean) / std
		if math.Abs(p.ResidualZ-want) > 1e-9 {
			t.Errorf("residual_z[%d] = %v, want %v", i, p.ResidualZ, want)
		}
	}
}

func TestFitter_ConstantSeriesHasZeroResidualZ(t *testing.T) {
	series := mustSeries(t, "flat", []int{2015, 2016, 2017, 2018}, []float64{5, 5, 5, 5})

	fit, err := NewFitter().Fit(series)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	for i, p := range fit.Points {
		if p.ResidualZ != 0 {
			t.Errorf("residual_z[%d] = %v, want 0", i, p.ResidualZ)
		}
		if i > 0 && (p.YoYZ == nil || *p.YoYZ != 0) {
			t.Errorf("yoy_z[%d] = %v, want 0 with unit divisor fallback", i, p.YoYZ)
		}
	}
}

func TestFitter_ForecastIsFixedYearExtrapolation(t *testing.T) {
	// All years after the forecast year: the forecast extrapolates backwards.
	series := mustSeries(t, "future", []int{2030, 2031, 2032}, []float64{7, 9, 14})

	fit, err := NewFitter().Fit(series)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	want := fit.Line.Slope*2025 + fit.Line.Intercept
	if fit.ForecastLinear != want {
		t.Errorf("ForecastLinear = %v, want %v", fit.ForecastLinear, want)
	}

	custom := &Fitter{ForecastYear: 2040}
	fit, err = custom.Fit(series)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if fit.ForecastLinear != fit.Line.At(2040) {
		t.Errorf("Expected forecast at 2040, got %v", fit.ForecastLinear)
	}
}

func TestFitter_DropsMissingAndSorts(t *testing.T) {
	series := analytics.Series{
		Name: "gaps",
		Points: []analytics.YearPoint{
			{Year: 2017, Value: 120},
			analytics.Missing(2016),
			{Year: 2015, Value: 100},
		},
	}

	fit, err := NewFitter().Fit(series)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if len(fit.Points) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(fit.Points))
	}
	if fit.Points[0].Year != 2015 || fit.Points[1].Year != 2017 {
		t.Errorf("Expected years 2015, 2017; got %d, %d", fit.Points[0].Year, fit.Points[1].Year)
	}
	if *fit.Points[1].PredNaive != 100 {
		t.Errorf("Expected pred_naive 100 from the previous valid year, got %v", *fit.Points[1].PredNaive)
	}
}

func TestFitter_ZeroBaseYoYIsUndefined(t *testing.T) {
	series := mustSeries(t, "zero", []int{2019, 2020, 2021, 2022}, []float64{0, 4, 6, 9})

	fit, err := NewFitter().Fit(series)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if fit.Points[1].YoY != nil || fit.Points[1].YoYZ != nil {
		t.Error("Expected undefined yoy over a zero base")
	}
	if fit.Points[2].YoY == nil || *fit.Points[2].YoY != 0.5 {
		t.Errorf("Expected yoy 0.5, got %v", fit.Points[2].YoY)
	}
}

func TestFitter_InsufficientData(t *testing.T) {
	tests := []struct {
		name   string
		series analytics.Series
	}{
		{"empty", analytics.Series{Name: "empty"}},
		{"one point", mustSeries(t, "one", []int{2020}, []float64{1})},
		{"one valid point", analytics.Series{
			Name:   "one-valid",
			Points: []analytics.YearPoint{{Year: 2020, Value: 1}, analytics.Missing(2021)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFitter().Fit(tt.series)
			if !errors.Is(err, analytics.ErrInsufficientData) {
				t.Errorf("Expected ErrInsufficientData, got %v", err)
			}
		})
	}
}

func TestFitter_OverflowingValues(t *testing.T) {
	series := mustSeries(t, "huge", []int{2015, 2016, 2017}, []float64{-1.7e308, 0, 1.7e308})

	_, err := NewFitter().Fit(series)
	if !errors.Is(err, analytics.ErrNonFinite) {
		t.Errorf("Expected ErrNonFinite, got %v", err)
	}
}

func TestFitter_DuplicateYear(t *testing.T) {
	series := mustSeries(t, "dup", []int{2020, 2020, 2021}, []float64{1, 2, 3})

	_, err := NewFitter().Fit(series)
	if !errors.Is(err, analytics.ErrDuplicateYear) {
		t.Errorf("Expected ErrDuplicateYear, got %v", err)
	}
}
