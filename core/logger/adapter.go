// Package logger is the logging surface for commands and config loading.
package logger

import (
	"fmt"

	"github.com/hyperterse/reportdeck/core/infrastructure/logging"
)

// SetLogLevel sets the global log level (1=ERROR .. 4=DEBUG).
func SetLogLevel(level int) { logging.SetLogLevel(level) }

// SetTagFilter sets the comma-separated tag filter.
func SetTagFilter(filter string) { logging.SetTagFilter(filter) }

// SetLogFile tees logs into a new file and returns its path.
func SetLogFile() (string, error) { return logging.SetLogFile() }

// CloseLogFile stops teeing logs into the file.
func CloseLogFile() error { return logging.CloseLogFile() }

// Logger wraps the infrastructure logger. Its Errorf builds a tagged error
// instead of logging, so a command can return it and the top level logs it
// once under the right tag.
type Logger struct {
	tag string
	logging.Logger
}

// New creates a logger for tag.
func New(tag string) *Logger {
	return &Logger{tag: tag, Logger: logging.New(tag)}
}

// Errorf returns the formatted error tagged with the logger's tag.
func (l *Logger) Errorf(format string, args ...any) error {
	return WithTag(l.tag, fmt.Errorf(format, args...))
}
