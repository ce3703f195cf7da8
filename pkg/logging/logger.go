// Package logging provides the pipeline's structured JSON logger. Each
// entry is a single-line JSON object carrying ts, level, and msg alongside
// the entry's structured fields, flattened at the top level.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// NewJSONLogger returns a logger emitting entries at or above level.
func NewJSONLogger(writer io.Writer, level Level) *JSONLogger {
	return &JSONLogger{
		mu:     &sync.Mutex{},
		writer: writer,
		level:  level,
	}
}

func (l *JSONLogger) log(level Level, msg string, fields []Field) {
	if level < l.level {
		return
	}

	entry := make(map[string]any, len(l.bound)+len(fields)+3)
	for _, f := range l.bound {
		entry[f.Key] = f.Value
	}
	for _, f := range fields {
		entry[f.Key] = f.Value
	}
	// Reserved keys win over field keys
	entry["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	entry["level"] = level.String()
	entry["msg"] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		l.mu.Lock()
		fmt.Fprintf(l.writer, `{"level":"error","msg":"log entry not marshalable: %v"}`+"\n", err)
		l.mu.Unlock()
		return
	}

	l.mu.Lock()
	l.writer.Write(append(data, '\n'))
	l.mu.Unlock()
}

func (l *JSONLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }
func (l *JSONLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }

// With returns a child logger carrying the given fields on every entry.
// The child shares the parent's writer and level.
func (l *JSONLogger) With(fields ...Field) Logger {
	bound := make([]Field, 0, len(l.bound)+len(fields))
	bound = append(bound, l.bound...)
	bound = append(bound, fields...)
	return &JSONLogger{
		mu:     l.mu,
		writer: l.writer,
		level:  l.level,
		bound:  bound,
	}
}
