package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with a component attribute so every record
// names the part of the program it came from.
type Logger struct {
	*slog.Logger
}

// New creates a logger writing text records to stderr at the given level.
func New(level slog.Level, component string) *Logger {
	return NewWithWriter(os.Stderr, level, component)
}

// NewWithWriter creates a logger writing to an arbitrary writer. Tests use
// this to capture output.
func NewWithWriter(w io.Writer, level slog.Level, component string) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})

	return &Logger{Logger: slog.New(handler).With("component", component)}
}

// ParseLevel maps a configuration string to a slog level. Unknown values
// default to info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
