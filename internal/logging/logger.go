package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const debugEnvVar = "TASKS_DEBUG"

// Options selects the handler used by New.
type Options struct {
	Level  string // debug, info, warn or error
	Format string // text or json
}

// DebugEnabled reports whether TASKS_DEBUG is set to a non-empty value.
func DebugEnabled() bool {
	return os.Getenv(debugEnvVar) != ""
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// New builds a logger writing to w. TASKS_DEBUG forces the debug level.
func New(opts Options, w io.Writer) *slog.Logger {
	level := ParseLevel(opts.Level)
	if DebugEnabled() {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
