package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldLogTag(t *testing.T) {
	t.Cleanup(func() { SetTagFilter("") })

	tests := []struct {
		filter string
		tag    string
		want   bool
	}{
		{filter: "", tag: "executor", want: true},
		{filter: "executor", tag: "executor", want: true},
		{filter: "executor", tag: "driver", want: false},
		{filter: "connector", tag: "connector:postgres", want: true},
		{filter: "-connector", tag: "connector:sqlite", want: false},
		{filter: "-connector", tag: "driver", want: true},
		{filter: "driver, -driver", tag: "driver", want: false},
		{filter: "connectors", tag: "connector", want: false},
	}

	for _, tt := range tests {
		SetTagFilter(tt.filter)
		assert.Equal(t, tt.want, ShouldLogTag(tt.tag), "filter %q tag %q", tt.filter, tt.tag)
	}
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	previous := GetLogLevel()
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLogLevel(previous)
	})

	SetLogLevel(LogLevelWarn)
	log := New("executor")
	log.Infof("cache miss for %s", "q1")
	assert.Empty(t, buf.String())

	log.Warnf("query failed: %s", "no such table")
	assert.Contains(t, buf.String(), "query failed: no such table")

	SetLogLevel(99)
	assert.Equal(t, LogLevelWarn, GetLogLevel())
}
