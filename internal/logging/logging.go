// Package logging writes one JSON object per line, the format every component of the service logs in.
package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger serializes log entries as single-line JSON with a "ts" field in a fixed location.
// It is safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	enc *json.Encoder
	loc *time.Location
}

// New returns a Logger writing to out. A nil loc means UTC.
func New(out io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{enc: json.NewEncoder(out), loc: loc}
}

// Default returns a Logger writing to stdout in UTC.
func Default() *Logger {
	return New(os.Stdout, time.UTC)
}

// Discard returns a Logger that drops every entry.
func Discard() *Logger {
	return New(io.Discard, time.UTC)
}

// Location returns the timezone used for the "ts" field.
func (l *Logger) Location() *time.Location {
	return l.loc
}

// Log writes data as is, adding "ts" and a "level" derived from "status" when missing.
func (l *Logger) Log(data map[string]any) {
	data["ts"] = time.Now().In(l.loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(data)
}

// Info logs an informational event with optional fields.
func (l *Logger) Info(event string, fields map[string]any) {
	l.Log(entry("info", event, fields))
}

// Warn logs a warning event with optional fields.
func (l *Logger) Warn(event string, fields map[string]any) {
	l.Log(entry("warn", event, fields))
}

// Error logs an error event. The error message is stored under "error".
func (l *Logger) Error(event string, err error, fields map[string]any) {
	e := entry("error", event, fields)
	if err != nil {
		e["error"] = err.Error()
	}
	l.Log(e)
}

func entry(level, event string, fields map[string]any) map[string]any {
	e := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		e[k] = v
	}
	e["level"] = level
	e["event"] = event
	return e
}
