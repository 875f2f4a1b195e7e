package config

import (
	"fmt"
	"strings"
)

// Config represents the complete application configuration
type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Metrics  []MetricConfig `mapstructure:"metrics"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Output   OutputConfig   `mapstructure:"output"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// InputConfig describes where the raw indicator tables come from
type InputConfig struct {
	Workbook    string `mapstructure:"workbook"`     // Source .xlsx export
	CSV         string `mapstructure:"csv"`          // Long-format CSV (metric,year,value); used instead of the workbook when set
	ScopeColumn string `mapstructure:"scope_column"` // Column holding the geographic level
	ScopeValue  string `mapstructure:"scope_value"`  // Rows kept by the scope filter (e.g. "National")
	YearColumn  string `mapstructure:"year_column"`  // Column holding the year
}

// MetricConfig names one series and where to read it in the workbook.
// Metrics are analysed and reported in the order they are listed.
type MetricConfig struct {
	Name   string `mapstructure:"name"`   // Display name carried into every output row
	Sheet  string `mapstructure:"sheet"`  // Workbook sheet
	Column string `mapstructure:"column"` // Column summed per year
}

// AnalysisConfig represents trend/anomaly settings
type AnalysisConfig struct {
	ForecastYear     int     `mapstructure:"forecast_year"`     // Fixed extrapolation year (default: 2025)
	AnomalyThreshold float64 `mapstructure:"anomaly_threshold"` // |z| above which a point is flagged (default: 1.5)
	Workers          int     `mapstructure:"workers"`           // Metrics analysed concurrently (default: 1)
}

// OutputConfig represents export settings
type OutputConfig struct {
	Dir             string `mapstructure:"dir"`
	PredictionsFile string `mapstructure:"predictions_file"`
	SummaryFile     string `mapstructure:"summary_file"`
	BOM             bool   `mapstructure:"bom"` // Prefix files with a UTF-8 byte-order mark for spreadsheet tools
}

// QueueConfig represents the optional result publication backend
type QueueConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Type          string `mapstructure:"type"`           // nats (default), redis, kafka, memory
	URL           string `mapstructure:"url"`            // e.g. nats://localhost:4222, redis://localhost:6379
	Username      string `mapstructure:"username"`       // Optional authentication
	Password      string `mapstructure:"password"`       // Optional authentication
	SubjectPrefix string `mapstructure:"subject_prefix"` // Subjects are <prefix>.predictions and <prefix>.summaries

	// Redis-specific options
	RedisDB     int    `mapstructure:"redis_db"`     // Redis database number (default: 0)
	RedisStream string `mapstructure:"redis_stream"` // Redis stream prefix (default: "biotrend")

	// Kafka-specific options
	KafkaBrokers []string `mapstructure:"kafka_brokers"` // Kafka broker addresses
}

// ServerConfig represents HTTP API configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address for server (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// AuthConfig represents API key authentication for the /v1 routes
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	APIKeys []string `mapstructure:"api_keys"` // At least 32 characters each
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Input.Validate(); err != nil {
		return fmt.Errorf("input config: %w", err)
	}

	if err := validateMetrics(c.Metrics); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}

	if err := c.Analysis.Validate(); err != nil {
		return fmt.Errorf("analysis config: %w", err)
	}

	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.Queue.Validate(); err != nil {
		return fmt.Errorf("queue config: %w", err)
	}

	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates input configuration
func (c *InputConfig) Validate() error {
	if c.YearColumn == "" {
		return fmt.Errorf("input.year_column is required")
	}
	if c.ScopeColumn != "" && c.ScopeValue == "" {
		return fmt.Errorf("input.scope_value is required when input.scope_column is set")
	}
	return nil
}

func validateMetrics(metrics []MetricConfig) error {
	seen := make(map[string]bool, len(metrics))
	for i, m := range metrics {
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

// Validate validates analysis configuration
func (c *AnalysisConfig) Validate() error {
	if c.ForecastYear <= 0 {
		return fmt.Errorf("analysis.forecast_year must be positive")
	}

	if c.AnomalyThreshold <= 0 {
		return fmt.Errorf("analysis.anomaly_threshold must be positive")
	}

	if c.Workers < 1 {
		return fmt.Errorf("analysis.workers must be at least 1")
	}

	return nil
}

// Validate validates output configuration
func (c *OutputConfig) Validate() error {
	if c.PredictionsFile == "" || c.SummaryFile == "" {
		return fmt.Errorf("output.predictions_file and output.summary_file are required")
	}

	if c.PredictionsFile == c.SummaryFile {
		return fmt.Errorf("output.predictions_file and output.summary_file cannot be the same")
	}

	return nil
}

// Validate validates queue configuration
func (c *QueueConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	switch strings.ToLower(c.Type) {
	case "", "nats", "redis", "memory":
	case "kafka":
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("queue.kafka_brokers is required for kafka")
		}
	default:
		return fmt.Errorf("queue.type must be one of: nats, redis, kafka, memory")
	}

	if c.SubjectPrefix == "" {
		return fmt.Errorf("queue.subject_prefix is required")
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	return nil
}

// Validate validates auth configuration
func (c *AuthConfig) Validate() error {
	if c.Enabled && len(c.APIKeys) == 0 {
		return fmt.Errorf("auth.api_keys is required when auth is enabled")
	}
	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
