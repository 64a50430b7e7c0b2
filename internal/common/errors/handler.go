// internal/common/errors/handler.go
package errors

import (
	"time"
)

// ErrorHandler folds query failures into the user-facing envelope message
// with standardized logging. The raw error never reaches the caller; the
// envelope carries a prefixed message instead.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleFailure logs the failure with its taxonomy fields and returns the
// envelope message the caller should surface.
func (h *ErrorHandler) HandleFailure(err error, fields map[string]interface{}) string {
	stdErr := h.normalizeError(err)

	message := EnvelopeMessage(err)
	h.logError(stdErr, message, fields)

	return message
}

// EnvelopeMessage maps an error onto the message reported in an error
// envelope. Malformed model output gets its own prefix; everything else,
// including metrics store failures, is reported as an API error.
func EnvelopeMessage(err error) string {
	if CodeOf(err) == ErrCodeJSONDecode {
		return "JSON parsing error: " + err.Error()
	}
	return "API error: " + err.Error()
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func (h *ErrorHandler) logError(stdErr *StandardError, message string, fields map[string]interface{}) {
	logFields := map[string]interface{}{
		"error":         message,
		"errorCode":     string(stdErr.Code),
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	for k, v := range fields {
		logFields[k] = v
	}
	h.logger.Error("query failed", logFields)
}
