package models

import "github.com/soltixdb/biotrend/internal/services"

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// AnalyzeResponse represents the result of an analysis request
type AnalyzeResponse struct {
	RunID       string                   `json:"run_id"`
	Predictions []services.PredictionRow `json:"predictions"`
	Summaries   []services.SummaryRow    `json:"summaries"`
	Failures    []services.MetricFailure `json:"failures"`
}

// NewAnalyzeResponse wraps a service result
func NewAnalyzeResponse(result *services.Result) AnalyzeResponse {
	return AnalyzeResponse{
		RunID:       result.RunID,
		Predictions: result.Predictions,
		Summaries:   result.Summaries,
		Failures:    result.Failures,
	}
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
