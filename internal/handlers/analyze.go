package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/biotrend/internal/logging"
	"github.com/soltixdb/biotrend/internal/models"
)

// Analyze handles POST /v1/analyze.
// Per-metric failures are part of a 200 response; only malformed requests are rejected.
func (h *Handler) Analyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "Invalid request body: " + err.Error(),
			},
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
	}

	ctx := c.UserContext()
	logger := logging.FromContext(ctx)

	logger.Debug("Analyze request",
		"metrics", len(req.Metrics),
		"missing_points", req.MissingPoints())

	result, err := h.analysisService.Run(ctx, req.Series())
	if err != nil {
		return err
	}

	if h.sink != nil {
		// Publication is best effort; the caller still gets the result
		if err := h.sink.Publish(ctx, result); err != nil {
			logger.Error("Failed to publish results", "run_id", result.RunID, "error", err)
		}
	}

	return c.JSON(models.NewAnalyzeResponse(result))
}
