package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldService      = "service"
	FieldComponent    = "component"
	FieldTraceID      = "trace_id"
	FieldRequestID    = "request_id"
	FieldFormID       = "form_id"
	FieldOperation    = "operation"
	FieldMode         = "mode"
	FieldProviderCode = "provider_code"
	FieldErrorCode    = "error_code"
	FieldStatus       = "status"
	FieldError        = "error"
	FieldDuration     = "duration_ms"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldProvider     = "provider"
)

// Fields builds a map from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("operation", "sign_in", "mode", "sign_in"))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]any {
	return map[string]any{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// DurationFields creates fields for a timed operation.
func DurationFields(op string, d time.Duration) map[string]any {
	return map[string]any{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}
