package logging

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/hyperterse/reportdeck/core/domain/interfaces"
)

const (
	LogLevelError = 1
	LogLevelWarn  = 2
	LogLevelInfo  = 3
	LogLevelDebug = 4
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z"

var (
	globalLogLevel = LogLevelInfo
	logLevelMutex  sync.RWMutex

	// Tag filtering
	tagFilter      []string
	tagFilterMutex sync.RWMutex

	// Reports own stdout, so logs default to stderr.
	logFile      *os.File
	logFileDir   = "/tmp/.reportdeck/logs"
	logWriter    io.Writer = os.Stderr
	logWriterMux sync.RWMutex
)

// SetLogLevel sets the global log level
func SetLogLevel(level int) {
	logLevelMutex.Lock()
	defer logLevelMutex.Unlock()
	if level >= LogLevelError && level <= LogLevelDebug {
		globalLogLevel = level
		zerolog.SetGlobalLevel(convertLogLevel(level))
	}
}

// GetLogLevel returns the current global log level
func GetLogLevel() int {
	logLevelMutex.RLock()
	defer logLevelMutex.RUnlock()
	return globalLogLevel
}

// SetTagFilter sets the tag filter from a comma-separated string.
// A tag prefixed with "-" is excluded; any other tag switches the filter to
// include-only mode. Tags match exactly or as a "tag:" prefix.
func SetTagFilter(filterStr string) {
	tagFilterMutex.Lock()
	defer tagFilterMutex.Unlock()

	if filterStr == "" {
		tagFilter = nil
		return
	}

	tags := strings.Split(filterStr, ",")
	tagFilter = make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tagFilter = append(tagFilter, tag)
		}
	}
}

// ShouldLogTag checks if a tag should be logged based on the filter
func ShouldLogTag(tag string) bool {
	tagFilterMutex.RLock()
	defer tagFilterMutex.RUnlock()

	if len(tagFilter) == 0 {
		return true
	}

	for _, filterTag := range tagFilter {
		if excludeTag, ok := strings.CutPrefix(filterTag, "-"); ok {
			if matchesTag(tag, excludeTag) {
				return false
			}
		}
	}

	hasInclusion := false
	for _, filterTag := range tagFilter {
		if strings.HasPrefix(filterTag, "-") {
			continue
		}
		hasInclusion = true
		if matchesTag(tag, filterTag) {
			return true
		}
	}

	return !hasInclusion
}

func matchesTag(tag, filter string) bool {
	return tag == filter || strings.HasPrefix(tag, filter+":")
}

// SetOutput redirects every logger created afterwards to w.
func SetOutput(w io.Writer) {
	logWriterMux.Lock()
	defer logWriterMux.Unlock()
	logWriter = w
}

func output() io.Writer {
	logWriterMux.RLock()
	defer logWriterMux.RUnlock()
	return logWriter
}

// SetLogFile enables log file streaming with an auto-generated filename and
// returns the file path.
func SetLogFile() (string, error) {
	logWriterMux.Lock()
	defer logWriterMux.Unlock()

	if err := os.MkdirAll(logFileDir, 0755); err != nil {
		return "", err
	}

	filename := "reportdeck-" + generateLogFileHash() + ".log"
	filePath := filepath.Join(logFileDir, filename)

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", err
	}

	logFile = file
	logWriter = io.MultiWriter(os.Stderr, file)
	return filePath, nil
}

// CloseLogFile closes the log file if it's open
func CloseLogFile() error {
	logWriterMux.Lock()
	defer logWriterMux.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logWriter = os.Stderr
	return err
}

func generateLogFileHash() string {
	randomBytes := make([]byte, 8)
	_, _ = rand.Read(randomBytes)

	hashInput := fmt.Sprintf("%d-%d-%x", time.Now().UnixNano(), os.Getpid(), randomBytes)
	hash := sha256.Sum256([]byte(hashInput))

	return hex.EncodeToString(hash[:])[:8]
}

// ZerologLogger writes tagged events through zerolog.
type ZerologLogger struct {
	tag    string
	logger zerolog.Logger
}

// Logger is the interface exported from this package
type Logger = interfaces.Logger

// New returns a logger for tag, or a silent one when the tag filter
// excludes it.
func New(tag string) Logger {
	if !ShouldLogTag(tag) {
		return noOpLogger{}
	}

	out := output()
	if isInteractive() {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: consoleTimeFormat}
	}

	return &ZerologLogger{
		tag:    tag,
		logger: zerolog.New(out).With().Str("tag", tag).Timestamp().Logger(),
	}
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func convertLogLevel(level int) zerolog.Level {
	switch level {
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// event returns nil when level is filtered out; zerolog treats a nil event
// as disabled.
func (l *ZerologLogger) event(level int) *zerolog.Event {
	if level > GetLogLevel() {
		return nil
	}
	switch level {
	case LogLevelError:
		return l.logger.Error()
	case LogLevelWarn:
		return l.logger.Warn()
	case LogLevelDebug:
		return l.logger.Debug()
	default:
		return l.logger.Info()
	}
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.event(LogLevelError).Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.event(LogLevelWarn).Msgf(format, args...)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.event(LogLevelInfo).Msgf(format, args...)
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.event(LogLevelDebug).Msgf(format, args...)
}

func (l *ZerologLogger) Error(message string) {
	l.event(LogLevelError).Msg(message)
}

func (l *ZerologLogger) Info(message string) {
	l.event(LogLevelInfo).Msg(message)
}

// Successf ignores the log level.
func (l *ZerologLogger) Successf(format string, args ...any) {
	l.logger.WithLevel(zerolog.NoLevel).Str("status", "success").Msgf(format, args...)
}

// PrintValidationErrors logs a heading and one line per problem.
func (l *ZerologLogger) PrintValidationErrors(problems []string) {
	if len(problems) == 0 {
		return
	}
	l.Errorf("Validation Errors (%d)", len(problems))
	for i, problem := range problems {
		l.Errorf("  %d. %s", i+1, problem)
	}
}

type noOpLogger struct{}

func (noOpLogger) Errorf(string, ...any)          {}
func (noOpLogger) Warnf(string, ...any)           {}
func (noOpLogger) Infof(string, ...any)           {}
func (noOpLogger) Debugf(string, ...any)          {}
func (noOpLogger) Error(string)                   {}
func (noOpLogger) Info(string)                    {}
func (noOpLogger) Successf(string, ...any)        {}
func (noOpLogger) PrintValidationErrors([]string) {}
