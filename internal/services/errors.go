// Package services provides the business logic layer between the outer
// surfaces (CLI, HTTP handlers) and the analytics packages.
package services

import (
	"errors"

	"github.com/soltixdb/biotrend/internal/analytics"
)

// Failure codes reported per metric
const (
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeInvalidSeries    = "INVALID_SERIES"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// metricError maps an analytics error for one metric onto a coded ServiceError.
func metricError(metric string, err error) *ServiceError {
	code := CodeInvalidSeries
	if errors.Is(err, analytics.ErrInsufficientData) {
		code = CodeInsufficientData
	}
	return NewServiceErrorWithDetails(code, err.Error(), map[string]interface{}{
		"metric": metric,
	})
}
