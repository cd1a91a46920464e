package logger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithTag(t *testing.T) {
	assert.NoError(t, WithTag("driver", nil))

	cause := errors.New("connection refused")
	err := WithTag("driver", cause)
	assert.Equal(t, "driver", ErrorTag(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "connection refused", err.Error())
}

func TestWithTag_InnermostWins(t *testing.T) {
	inner := WithTag("connector", errors.New("refused"))
	outer := WithTag("cli", fmt.Errorf("run: %w", inner))

	assert.Equal(t, "connector", ErrorTag(outer))
	assert.Equal(t, "", ErrorTag(errors.New("untagged")))
}

func TestLoggerErrorf(t *testing.T) {
	err := New("validate").Errorf("catalog %s is invalid", "reports.yaml")
	assert.EqualError(t, err, "catalog reports.yaml is invalid")
	assert.Equal(t, "validate", ErrorTag(err))
}
