package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionFailed(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	err := fmt.Errorf("report 1: %w", ConnectionFailed(cause))

	assert.True(t, IsConnectionError(err))
	assert.False(t, IsNotFound(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusServiceUnavailable, StatusOf(err))
	assert.Contains(t, err.Error(), "CONNECTION_FAILED: unable to connect to database")
}

func TestStatusAndCodes(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		status int
	}{
		{ErrCodeReportNotFound, http.StatusNotFound},
		{ErrCodeCatalogInvalid, http.StatusBadRequest},
		{ErrCodeConfigInvalid, http.StatusBadRequest},
		{ErrCodeConnectionFailed, http.StatusServiceUnavailable},
		{ErrCodeExecutionFailed, http.StatusInternalServerError},
		{ErrCodeInternalError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := NewAppError(tt.code, "boom", nil)
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.code, CodeOf(err))
			assert.Equal(t, string(tt.code)+": boom", err.Error())
		})
	}
}

func TestPlainErrors(t *testing.T) {
	err := errors.New("plain")
	assert.Equal(t, ErrorCode(""), CodeOf(err))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.False(t, IsValidationError(err))
	assert.True(t, IsValidationError(NewAppError(ErrCodeCatalogInvalid, "bad", err)))
}
