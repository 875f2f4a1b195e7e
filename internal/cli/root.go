// Package cli implements the biotrend command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/soltixdb/biotrend/internal/config"
	"github.com/soltixdb/biotrend/internal/logging"
)

// Build information, injected via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Flags holds the persistent flags shared by all commands
type Flags struct {
	ConfigFile string
	LogLevel   string
}

// NewRootCmd creates the root command with isolated flag state
func NewRootCmd() *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:   "biotrend",
		Short: "Trend, anomaly and backtest analysis of yearly organic-farming indicators",
		Long: `biotrend reads yearly national indicators (organic area, area in conversion,
livestock and hives, downstream companies), fits a linear trend per indicator,
flags anomalous residuals and growth rates, backtests the trend walk-forward and
exports predictions and a per-indicator summary.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "", "Path to configuration file")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	cmd.AddCommand(newAnalyzeCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the CLI with ctx and returns the command error
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// bootstrap loads configuration and builds the logger for a command
func bootstrap(flags *Flags) (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flags.LogLevel != "" {
		cfg.Logging.Level = flags.LogLevel
		if err := cfg.Logging.Validate(); err != nil {
			return nil, nil, err
		}
	}

	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logging.SetGlobal(logger)

	return cfg, logger, nil
}
