// Package errors provides standardized error handling for the support query service.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeRemoteCall    ErrorCode = "REMOTE_CALL_ERROR"
	ErrCodeJSONDecode    ErrorCode = "JSON_DECODE_ERROR"
	ErrCodeTemplate      ErrorCode = "TEMPLATE_ERROR"
	ErrCodeMetricsIO     ErrorCode = "METRICS_IO_ERROR"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewConfigurationError creates a non-retryable configuration error.
// Missing credentials are fatal at startup.
func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   "Invalid or incomplete configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRemoteCallError creates a retryable remote API error.
func NewRemoteCallError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRemoteCall,
		Message:   fmt.Sprintf("Remote service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRemoteStatusError creates a retryable error for a non-2xx API response.
func NewRemoteStatusError(service string, status int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRemoteCall,
		Message:   fmt.Sprintf("Remote service '%s' returned status %d", service, status),
		Details:   body,
		Retryable: status >= 500,
		Timestamp: time.Now().UTC(),
	}
}

// NewJSONDecodeError creates a non-retryable decode error for malformed model output.
func NewJSONDecodeError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeJSONDecode,
		Message:   "Model output is not valid JSON",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateError creates a non-retryable prompt template error.
// Callers fall back to the embedded default template instead of failing.
func NewTemplateError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplate,
		Message:   "Prompt template is missing or invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMetricsIOError creates a retryable metrics store I/O error.
func NewMetricsIOError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMetricsIO,
		Message:   "Metrics store I/O error",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// CodeOf extracts the ErrorCode from an error, or "UNKNOWN" for plain errors.
func CodeOf(err error) ErrorCode {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Code
	}
	return "UNKNOWN"
}

// IsRetryable reports whether the error is marked retryable.
func IsRetryable(err error) bool {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Retryable
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeConfiguration:
		return "CONFIGURATION"
	case ErrCodeRemoteCall:
		return "API"
	case ErrCodeJSONDecode:
		return "PARSING"
	case ErrCodeTemplate:
		return "TEMPLATE"
	case ErrCodeMetricsIO:
		return "STORAGE"
	case ErrCodeInternal:
		return "INTERNAL"
	default:
		return "OTHER"
	}
}
