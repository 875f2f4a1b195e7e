package handlers

import (
	"github.com/soltixdb/biotrend/internal/export"
	"github.com/soltixdb/biotrend/internal/logging"
	"github.com/soltixdb/biotrend/internal/services"
)

// Version is reported by the health endpoint; overridden at build time
var Version = "dev"

// Handler contains all HTTP handlers
type Handler struct {
	logger          *logging.Logger
	analysisService *services.AnalysisService
	sink            *export.QueueSink // nil when publication is disabled
}

// New creates a new handler instance
func New(logger *logging.Logger, analysisService *services.AnalysisService, sink *export.QueueSink) *Handler {
	return &Handler{
		logger:          logger,
		analysisService: analysisService,
		sink:            sink,
	}
}
