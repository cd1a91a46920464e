package interfaces

// Logger is a tagged logger. Levels and tag filtering are process wide.
type Logger interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)

	Error(message string)
	Info(message string)

	// Successf is written at every log level.
	Successf(format string, args ...any)

	// PrintValidationErrors logs problems as a numbered list.
	PrintValidationErrors(problems []string)
}
