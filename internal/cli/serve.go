package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soltixdb/biotrend/internal/export"
	"github.com/soltixdb/biotrend/internal/handlers"
	"github.com/soltixdb/biotrend/internal/queue"
	"github.com/soltixdb/biotrend/internal/router"
	"github.com/soltixdb/biotrend/internal/utils"
)

func newServeCmd(flags *Flags) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(flags)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.HTTPPort = port
			}
			if err := cfg.Server.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			logger.Info("API server starting",
				"version", Version, "commit", GitCommit, "build time", BuildTime)

			var sink *export.QueueSink
			if cfg.Queue.Enabled {
				logger.Info("Connecting to Queue", "type", cfg.Queue.Type, "url", cfg.Queue.URL)
				publisher, err := queue.NewPublisher(ctx, cfg.Queue)
				if err != nil {
					return fmt.Errorf("failed to connect to queue: %w", err)
				}
				defer func() { _ = publisher.Close() }()
				sink = export.NewQueueSink(publisher, cfg.Queue.SubjectPrefix, logger)
			}

			if cfg.Auth.Enabled {
				logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
			} else {
				logger.Warn("API key authentication DISABLED - all requests will be allowed")
			}

			handlers.Version = Version
			app := router.New(logger, cfg, sink)

			errCh := make(chan error, 1)
			go func() {
				addr := cfg.GetServerAddress()
				logger.Info("Server listening", "address", addr)
				errCh <- app.Listen(addr)
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("server stopped: %w", err)
			case <-ctx.Done():
			}

			logger.Info("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), utils.ShutdownTimeout)
			defer cancel()

			if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Server forced to shutdown", "error", err)
				return err
			}

			logger.Info("Server exited")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (overrides server.http_port)")

	return cmd
}
