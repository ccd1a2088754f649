package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

const (
	// FormatJSON writes one JSON object per line (default).
	FormatJSON = "json"
	// FormatText writes colored human-readable lines via tint.
	FormatText = "text"
)

// SetDefaultStructuredLogger installs the process-wide logger using LOG_LEVEL
// and LOG_FORMAT from the environment.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv("LOG_LEVEL"))
}

// SetDefaultStructuredLoggerWithLevel installs the process-wide logger with an
// explicit level string. An empty level falls back to INFO.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// NewStructuredLogger returns a logger writing to stderr tagged with module and version.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return newLogger(os.Stderr, os.Getenv("LOG_FORMAT"), module, version, ParseLogLevel(level))
}

func newLogger(w io.Writer, format, module, version string, lvl slog.Level) *slog.Logger {
	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText:
		h = tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
			AddSource:  lvl <= slog.LevelDebug,
		})
	default:
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     lvl,
			AddSource: lvl <= slog.LevelDebug,
		})
	}

	return slog.New(h).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}

// ParseLogLevel converts a case-insensitive level name into a slog.Level.
// Unknown values map to INFO.
func ParseLogLevel(level string) slog.Level {
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

// NewLogLogger adapts the default slog handler to a standard library *log.Logger,
// used for http.Server.ErrorLog.
func NewLogLogger(level slog.Level) *log.Logger {
	return slog.NewLogLogger(slog.Default().Handler(), level)
}
