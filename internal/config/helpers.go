package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDirectories ensures all required directories exist
func (c *Config) EnsureDirectories() error {
	if c.Output.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", c.Output.Dir, err)
	}
	return nil
}

// PredictionsPath returns the full path of the predictions table
func (c *Config) PredictionsPath() string {
	return filepath.Join(c.Output.Dir, c.Output.PredictionsFile)
}

// SummaryPath returns the full path of the summary table
func (c *Config) SummaryPath() string {
	return filepath.Join(c.Output.Dir, c.Output.SummaryFile)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Logging.Level == "debug" && c.Logging.Format == "console"
}
