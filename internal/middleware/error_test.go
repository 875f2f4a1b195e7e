package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/soltixdb/biotrend/internal/logging"
	"github.com/soltixdb/biotrend/internal/models"
	"github.com/soltixdb/biotrend/internal/services"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:           "fiber bad request",
			err:            fiber.ErrBadRequest,
			expectedStatus: fiber.StatusBadRequest,
			expectedCode:   "ERROR",
			expectedMsg:    "Bad Request",
		},
		{
			name:           "fiber payload too large",
			err:            fiber.ErrRequestEntityTooLarge,
			expectedStatus: fiber.StatusRequestEntityTooLarge,
			expectedCode:   "ERROR",
			expectedMsg:    "Request Entity Too Large",
		},
		{
			name:           "service error",
			err:            services.NewServiceError(services.CodeInsufficientData, "need 2 points"),
			expectedStatus: fiber.StatusUnprocessableEntity,
			expectedCode:   services.CodeInsufficientData,
			expectedMsg:    "need 2 points",
		},
		{
			name:           "generic error",
			err:            errors.New("boom"),
			expectedStatus: fiber.StatusInternalServerError,
			expectedCode:   "INTERNAL_ERROR",
			expectedMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logging.NewNop())})
			app.Get("/fail", func(c *fiber.Ctx) error {
				return tt.err
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
			if err != nil {
				t.Fatalf("Failed to test request: %v", err)
			}

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}

			body, _ := io.ReadAll(resp.Body)
			var errResp models.ErrorResponse
			if err := json.Unmarshal(body, &errResp); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}

			if errResp.Error.Code != tt.expectedCode {
				t.Errorf("Expected code %q, got %q", tt.expectedCode, errResp.Error.Code)
			}
			if errResp.Error.Message != tt.expectedMsg {
				t.Errorf("Expected message %q, got %q", tt.expectedMsg, errResp.Error.Message)
			}
			if errResp.Error.Path != "/fail" {
				t.Errorf("Expected path /fail, got %q", errResp.Error.Path)
			}
		})
	}
}
