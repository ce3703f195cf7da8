package logging

import (
	"io"
	"sync"
)

// Level orders log severities. The zero value is DebugLevel so a
// zero-configured logger emits everything.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the lowercase name used in log entries and config files.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel maps a level name to its Level, case-insensitively. Unknown
// names fall back to InfoLevel.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return DebugLevel
	case "info", "INFO":
		return InfoLevel
	case "warn", "WARN", "warning", "WARNING":
		return WarnLevel
	case "error", "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Field is one structured key-value pair of a log entry.
type Field struct {
	Key   string
	Value any
}

// Logger is what the pipeline stages log through.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a child logger whose entries carry the given fields.
	With(fields ...Field) Logger
}

// JSONLogger writes one JSON object per entry. The mutex only guards the
// writer; bound fields and level are immutable after construction, so child
// loggers from With share the writer safely.
type JSONLogger struct {
	mu     *sync.Mutex
	writer io.Writer
	level  Level
	bound  []Field
}

// NopLogger discards everything. Useful as a default in tests.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}

func (n NopLogger) With(...Field) Logger { return n }
