// Package monitoring provides structured JSON logging for the long-running
// hexlint components (the validation service and the file watcher).
package monitoring

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"
)

// LogLevel orders log severities.
type LogLevel int

// Severities, lowest first.
const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// String returns the wire name of the level.
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LogEntry is one JSON log line.
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Component string                 `json:"component"`
	EventType string                 `json:"event_type"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Logger emits structured log entries.
type Logger interface {
	Log(ctx context.Context, level LogLevel, eventType string, message string, details map[string]interface{})
}

type logger struct {
	component string
	out       io.Writer
}

// NewLogger creates a logger for component writing JSON lines to stdout.
func NewLogger(component string) Logger {
	return NewLoggerTo(component, os.Stdout)
}

// NewLoggerTo creates a logger for component writing JSON lines to out.
func NewLoggerTo(component string, out io.Writer) Logger {
	return &logger{
		component: component,
		out:       out,
	}
}

// Log writes one entry. The entry is emitted as a single JSON object per
// line; encoding failures are dropped rather than interrupting the caller.
func (l *logger) Log(ctx context.Context, level LogLevel, eventType string, message string, details map[string]interface{}) {
	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level.String(),
		Message:   message,
		Component: l.component,
		EventType: eventType,
		Details:   details,
	}

	_ = json.NewEncoder(l.out).Encode(entry)
}
