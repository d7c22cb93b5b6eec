package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewJSONCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "json", slog.LevelDebug).With(slog.String("component", "event"))
	l.Debug("hello", "watcher", "w")

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "event", out["component"])
	assert.Equal(t, "hello", out["msg"])
	assert.Equal(t, "w", out["watcher"])
}

func TestNewTextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelWarn)
	l := New(&buf, "text", lv)

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	lv.Set(slog.LevelInfo)
	l.Info("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestSetLevel(t *testing.T) {
	prev := Level()
	t.Cleanup(func() { level.Set(prev) })

	SetLevel("error")
	assert.Equal(t, slog.LevelError, Level())
	SetLevel("debug")
	assert.Equal(t, slog.LevelDebug, Level())
}
