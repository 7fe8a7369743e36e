package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "info", "json")

	l.Info("request served",
		Field{"conn_id", "abc"},
		Field{"status", 200},
		Field{"error", errors.New("boom")},
		Field{"duration", 1500 * time.Millisecond},
	)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "request served", entry["message"])
	assert.Equal(t, "abc", entry["conn_id"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, "boom", entry["error"])
	assert.Contains(t, entry, "duration")
	assert.Contains(t, entry, "time")
}

func TestZeroLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "WARN", "json")

	l.Debug("hidden")
	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	l.Error("shown too")
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestZeroLoggerBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "loud", "json")

	l.Debug("hidden")
	assert.Empty(t, buf.String())
	l.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestZeroLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "debug", "console")

	l.Debug("handling connection", Field{"remote", "127.0.0.1:5000"})
	out := buf.String()
	assert.Contains(t, out, "handling connection")
	assert.Contains(t, out, "127.0.0.1:5000")
}

func TestSanitizeValue(t *testing.T) {
	long := strings.Repeat("a", 150)
	got := sanitizeValue(long)
	assert.Equal(t, strings.Repeat("a", 100)+"...[truncated]", got)
	assert.Equal(t, "short", sanitizeValue("short"))
	assert.Equal(t, 42, sanitizeValue(42))
}
