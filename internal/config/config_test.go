package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "default config should be valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing year column",
			mutate:  func(c *Config) { c.Input.YearColumn = "" },
			wantErr: true,
		},
		{
			name:    "scope column without value",
			mutate:  func(c *Config) { c.Input.ScopeValue = "" },
			wantErr: true,
		},
		{
			name:    "no scope filter",
			mutate:  func(c *Config) { c.Input.ScopeColumn = ""; c.Input.ScopeValue = "" },
			wantErr: false,
		},
		{
			name: "duplicate metric name",
			mutate: func(c *Config) {
				c.Metrics = append(c.Metrics, c.Metrics[0])
			},
			wantErr: true,
		},
		{
			name:    "empty metric name",
			mutate:  func(c *Config) { c.Metrics[1].Name = " " },
			wantErr: true,
		},
		{
			name:    "zero forecast year",
			mutate:  func(c *Config) { c.Analysis.ForecastYear = 0 },
			wantErr: true,
		},
		{
			name:    "non-positive threshold",
			mutate:  func(c *Config) { c.Analysis.AnomalyThreshold = 0 },
			wantErr: true,
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Analysis.Workers = 0 },
			wantErr: true,
		},
		{
			name:    "same output files",
			mutate:  func(c *Config) { c.Output.SummaryFile = c.Output.PredictionsFile },
			wantErr: true,
		},
		{
			name:    "kafka without brokers",
			mutate:  func(c *Config) { c.Queue.Enabled = true; c.Queue.Type = "kafka" },
			wantErr: true,
		},
		{
			name:    "unknown queue type ignored while disabled",
			mutate:  func(c *Config) { c.Queue.Type = "carrier-pigeon" },
			wantErr: false,
		},
		{
			name:    "unknown queue type",
			mutate:  func(c *Config) { c.Queue.Enabled = true; c.Queue.Type = "carrier-pigeon" },
			wantErr: true,
		},
		{
			name:    "invalid http port",
			mutate:  func(c *Config) { c.Server.HTTPPort = 0 },
			wantErr: true,
		},
		{
			name:    "auth enabled without keys",
			mutate:  func(c *Config) { c.Auth.Enabled = true },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Metrics) != 4 {
		t.Fatalf("Expected 4 reference metrics, got %d", len(cfg.Metrics))
	}
	if cfg.Metrics[0].Name != "Surface bio (ha)" || cfg.Metrics[3].Name != "Entreprises aval (nbr)" {
		t.Errorf("Unexpected metric order: %+v", cfg.Metrics)
	}
	if cfg.Analysis.ForecastYear != 2025 {
		t.Errorf("Expected forecast year 2025, got %d", cfg.Analysis.ForecastYear)
	}
	if cfg.Analysis.AnomalyThreshold != 1.5 {
		t.Errorf("Expected threshold 1.5, got %v", cfg.Analysis.AnomalyThreshold)
	}
	if !cfg.Output.BOM {
		t.Error("Expected BOM enabled by default")
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := DefaultConfig()
	if len(cfg.Metrics) != len(want.Metrics) {
		t.Fatalf("Expected %d metrics, got %d", len(want.Metrics), len(cfg.Metrics))
	}
	for i := range want.Metrics {
		if cfg.Metrics[i] != want.Metrics[i] {
			t.Errorf("metrics[%d] = %+v, want %+v", i, cfg.Metrics[i], want.Metrics[i])
		}
	}
	if cfg.Input.ScopeValue != "National" {
		t.Errorf("Expected scope 'National', got %q", cfg.Input.ScopeValue)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "biotrend.yaml")
	content := `
input:
  csv: series.csv
metrics:
  - name: Ruches
    sheet: Productions animales
    column: Ruches bio
analysis:
  workers: 4
logging:
  level: debug
  format: console
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("BIOTREND_OUTPUT_DIR", "/tmp/biotrend-out")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Input.CSV != "series.csv" {
		t.Errorf("Expected csv input, got %q", cfg.Input.CSV)
	}
	if len(cfg.Metrics) != 1 || cfg.Metrics[0].Name != "Ruches" {
		t.Errorf("Expected metrics from file, got %+v", cfg.Metrics)
	}
	if cfg.Analysis.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", cfg.Analysis.Workers)
	}
	if cfg.Analysis.ForecastYear != 2025 {
		t.Errorf("Expected default forecast year, got %d", cfg.Analysis.ForecastYear)
	}
	if cfg.Output.Dir != "/tmp/biotrend-out" {
		t.Errorf("Expected env override of output.dir, got %q", cfg.Output.Dir)
	}
	if !cfg.IsDevelopment() {
		t.Error("Expected development mode for debug/console logging")
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("analysis:\n  workers: 0\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected validation error for zero workers")
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Dir = filepath.Join(t.TempDir(), "nested", "out")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if _, err := os.Stat(cfg.Output.Dir); err != nil {
		t.Errorf("Expected output dir to exist: %v", err)
	}

	if got := cfg.PredictionsPath(); got != filepath.Join(cfg.Output.Dir, DefaultPredsFile) {
		t.Errorf("Unexpected predictions path %q", got)
	}
	if got := cfg.SummaryPath(); got != filepath.Join(cfg.Output.Dir, DefaultSummFile) {
		t.Errorf("Unexpected summary path %q", got)
	}
	if got := cfg.GetServerAddress(); got != "0.0.0.0:5555" {
		t.Errorf("Unexpected server address %q", got)
	}
}
