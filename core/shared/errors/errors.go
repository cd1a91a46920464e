package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Domain errors
	ErrCodeReportNotFound ErrorCode = "REPORT_NOT_FOUND"
	ErrCodeCatalogInvalid ErrorCode = "CATALOG_INVALID"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Application errors
	ErrCodeExecutionFailed ErrorCode = "EXECUTION_FAILED"

	// Infrastructure errors
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	ErrCodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error with code and context
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
	Status  int // HTTP status code
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Status:  getHTTPStatus(code),
	}
}

// ConnectionFailed wraps a failure to open the shared database handle
func ConnectionFailed(err error) *AppError {
	return NewAppError(ErrCodeConnectionFailed, "unable to connect to database", err)
}

// getHTTPStatus maps error codes to HTTP status codes
func getHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeReportNotFound:
		return http.StatusNotFound
	case ErrCodeCatalogInvalid, ErrCodeConfigInvalid:
		return http.StatusBadRequest
	case ErrCodeConnectionFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsConnectionError checks if the error is a connection failure
func IsConnectionError(err error) bool {
	return CodeOf(err) == ErrCodeConnectionFailed
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeReportNotFound
}

// IsValidationError checks if the error is a catalog or config validation error
func IsValidationError(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeCatalogInvalid || code == ErrCodeConfigInvalid
}

// StatusOf returns the HTTP status for err, defaulting to 500.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
