package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/soltixdb/biotrend/internal/analytics"
	"github.com/soltixdb/biotrend/internal/config"
	"github.com/soltixdb/biotrend/internal/export"
	"github.com/soltixdb/biotrend/internal/ingest"
	"github.com/soltixdb/biotrend/internal/logging"
	"github.com/soltixdb/biotrend/internal/queue"
	"github.com/soltixdb/biotrend/internal/services"
	"github.com/soltixdb/biotrend/internal/utils"
)

type analyzeOptions struct {
	workbook string
	csv      string
	outDir   string
	publish  bool
}

func newAnalyzeCmd(flags *Flags) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyse the configured indicators and export the result tables",
		Example: `  biotrend analyze --workbook "Export Productions Bio - National.xlsx"
  biotrend analyze --csv series.csv --out ./out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(flags)
			if err != nil {
				return err
			}
			opts.apply(cfg)
			if cmd.Flags().Changed("publish") {
				cfg.Queue.Enabled = opts.publish
			}
			return runAnalyze(cmd.Context(), cfg, logger, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.workbook, "workbook", "", "Source .xlsx export (overrides input.workbook)")
	cmd.Flags().StringVar(&opts.csv, "csv", "", "Long-format CSV (metric,year,value) used instead of the workbook")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Output directory (overrides output.dir)")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "Publish results to the configured queue")

	return cmd
}

func (o *analyzeOptions) apply(cfg *config.Config) {
	if o.workbook != "" {
		cfg.Input.Workbook = o.workbook
		cfg.Input.CSV = ""
	}
	if o.csv != "" {
		cfg.Input.CSV = o.csv
	}
	if o.outDir != "" {
		cfg.Output.Dir = o.outDir
	}
}

// loadSeries reads the configured input; a CSV takes precedence over the workbook
func loadSeries(ctx context.Context, cfg *config.Config, logger *logging.Logger) ([]analytics.Series, error) {
	if cfg.Input.CSV != "" {
		logger.Info("Loading series", "csv", cfg.Input.CSV)
		return ingest.LoadCSV(ctx, cfg.Input.CSV)
	}

	logger.Info("Loading series", "workbook", cfg.Input.Workbook, "metrics", len(cfg.Metrics))
	return ingest.NewWorkbookLoader(cfg.Input, logger).Load(ctx, cfg.Metrics)
}

func runAnalyze(ctx context.Context, cfg *config.Config, logger *logging.Logger, out io.Writer) error {
	series, err := loadSeries(ctx, cfg, logger)
	if err != nil {
		return err
	}

	result, err := services.NewAnalysisService(logger, cfg.Analysis).Run(ctx, series)
	if err != nil {
		return err
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	predictionsPath, summaryPath := cfg.PredictionsPath(), cfg.SummaryPath()
	if err := export.NewCSVWriter(cfg).WriteFiles(result, predictionsPath, summaryPath); err != nil {
		return err
	}

	if cfg.Queue.Enabled {
		if err := publishResult(ctx, cfg, logger, result); err != nil {
			return err
		}
	}

	for _, f := range result.Failures {
		_, _ = fmt.Fprintf(out, "SKIPPED %s: %s (%s)\n", f.Metric, f.Code, f.Message)
	}
	_, _ = fmt.Fprintln(out, "OK. Files exported:")
	_, _ = fmt.Fprintln(out, " -", predictionsPath)
	_, _ = fmt.Fprintln(out, " -", summaryPath)
	return nil
}

func publishResult(ctx context.Context, cfg *config.Config, logger *logging.Logger, result *services.Result) error {
	ctx, cancel := context.WithTimeout(ctx, utils.QueuePublishTimeout)
	defer cancel()

	publisher, err := queue.NewPublisher(ctx, cfg.Queue)
	if err != nil {
		return fmt.Errorf("failed to connect to queue: %w", err)
	}
	defer func() { _ = publisher.Close() }()

	return export.NewQueueSink(publisher, cfg.Queue.SubjectPrefix, logger).Publish(ctx, result)
}
