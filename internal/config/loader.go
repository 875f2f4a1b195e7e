package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Reference metric definitions from the national organic-production export
const (
	SheetCrops       = "Productions végétales"
	SheetLivestock   = "Productions animales"
	SheetDownstream  = "Entreprises de l'aval"
	DefaultYearCol   = "Année"
	DefaultScopeCol  = "Echelle géographique"
	DefaultScopeVal  = "National"
	DefaultWorkbook  = "Export Productions Bio - National.xlsx"
	DefaultPredsFile = "predictions_bio_poc.csv"
	DefaultSummFile  = "model_summary_bio_poc.csv"
)

// DefaultMetrics returns the four reference indicator definitions, in report order
func DefaultMetrics() []MetricConfig {
	return []MetricConfig{
		{Name: "Surface bio (ha)", Sheet: SheetCrops, Column: "Surface bio (en ha)"},
		{Name: "Surface en conversion (ha)", Sheet: SheetCrops, Column: "Surface en conversion (en ha)"},
		{Name: "Animaux/ruches bio", Sheet: SheetLivestock, Column: "Animaux ou ruches bio"},
		{Name: "Entreprises aval (nbr)", Sheet: SheetDownstream, Column: "Nombre d'entreprises"},
	}
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")             // Current directory
		v.AddConfigPath("./configs")     // Project configs directory
		v.AddConfigPath("/etc/biotrend") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides (BIOTREND_OUTPUT_DIR, ...)
	v.SetEnvPrefix("BIOTREND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Input defaults
	v.SetDefault("input.workbook", DefaultWorkbook)
	v.SetDefault("input.scope_column", DefaultScopeCol)
	v.SetDefault("input.scope_value", DefaultScopeVal)
	v.SetDefault("input.year_column", DefaultYearCol)

	// Metric defaults
	metrics := make([]map[string]interface{}, 0, 4)
	for _, m := range DefaultMetrics() {
		metrics = append(metrics, map[string]interface{}{
			"name":   m.Name,
			"sheet":  m.Sheet,
			"column": m.Column,
		})
	}
	v.SetDefault("metrics", metrics)

	// Analysis defaults
	v.SetDefault("analysis.forecast_year", 2025)
	v.SetDefault("analysis.anomaly_threshold", 1.5)
	v.SetDefault("analysis.workers", 1)

	// Output defaults
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.predictions_file", DefaultPredsFile)
	v.SetDefault("output.summary_file", DefaultSummFile)
	v.SetDefault("output.bom", true)

	// Queue defaults
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.type", "nats")
	v.SetDefault("queue.url", "nats://localhost:4222")
	v.SetDefault("queue.subject_prefix", "biotrend")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 5555)

	// Auth defaults
	v.SetDefault("auth.enabled", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stderr")
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Workbook:    DefaultWorkbook,
			ScopeColumn: DefaultScopeCol,
			ScopeValue:  DefaultScopeVal,
			YearColumn:  DefaultYearCol,
		},
		Metrics: DefaultMetrics(),
		Analysis: AnalysisConfig{
			ForecastYear:     2025,
			AnomalyThreshold: 1.5,
			Workers:          1,
		},
		Output: OutputConfig{
			Dir:             ".",
			PredictionsFile: DefaultPredsFile,
			SummaryFile:     DefaultSummFile,
			BOM:             true,
		},
		Queue: QueueConfig{
			Type:          "nats",
			URL:           "nats://localhost:4222",
			SubjectPrefix: "biotrend",
		},
		Server: ServerConfig{
			Host:     "0.0.0.0",
			HTTPPort: 5555,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stderr",
		},
	}
}
