package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/biotrend/internal/logging"
	"github.com/soltixdb/biotrend/internal/models"
	"github.com/soltixdb/biotrend/internal/services"
)

// ErrorHandler returns the application error handler.
// Service errors become 422 with their code; fiber errors keep their status.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		detail := models.ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: "Internal Server Error",
			Path:    c.Path(),
		}

		var fiberErr *fiber.Error
		var svcErr *services.ServiceError
		switch {
		case errors.As(err, &svcErr):
			status = fiber.StatusUnprocessableEntity
			detail.Code = svcErr.Code
			detail.Message = svcErr.Message
			detail.Details = svcErr.Details
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			detail.Code = "ERROR"
			detail.Message = fiberErr.Message
		}

		logger.Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", status,
			"request_id", c.GetRespHeader(logging.RequestIDHeader),
			"error", err)

		return c.Status(status).JSON(models.ErrorResponse{Error: detail})
	}
}
