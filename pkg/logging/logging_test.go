package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestNewLogger_JSONCarriesModuleAndVersion(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, FormatJSON, "platsd", "1.2.3", slog.LevelInfo)

	l.Info("hello", "submission_id", "abc123")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "platsd", entry["module"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, "abc123", entry["submission_id"])
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, FormatJSON, "platsd", "dev", slog.LevelWarn)

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "TEXT", "platsd", "dev", slog.LevelInfo)

	l.Info("plain line")

	out := buf.String()
	assert.Contains(t, out, "plain line")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "text output should not be JSON")
}
