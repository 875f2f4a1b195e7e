package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/soltixdb/biotrend/internal/config"
	"github.com/soltixdb/biotrend/internal/export"
	"github.com/soltixdb/biotrend/internal/handlers"
	"github.com/soltixdb/biotrend/internal/logging"
	"github.com/soltixdb/biotrend/internal/middleware"
	"github.com/soltixdb/biotrend/internal/services"
	"github.com/soltixdb/biotrend/internal/utils"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, cfg *config.Config, sink *export.QueueSink) *handlers.Handler {
	analysisService := services.NewAnalysisService(logger, cfg.Analysis)
	h := handlers.New(logger, analysisService, sink)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth.APIKeys, cfg.Auth.Enabled)

	v1 := app.Group("/v1", authMiddleware)
	v1.Post("/analyze", h.Analyze)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration.
// sink may be nil when result publication is disabled.
func New(logger *logging.Logger, cfg *config.Config, sink *export.QueueSink) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "biotrend",
		DisableStartupMessage: true,
		BodyLimit:             utils.MaxRequestBodySize,
		ReadTimeout:           utils.DefaultRequestTimeout,
		WriteTimeout:          utils.DefaultRequestTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, cfg, sink)

	return app
}
