package control

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultPriority, cfg.Dispatcher.Priority)
	assert.Equal(t, DefaultStreamTimeout, cfg.Stream.ReadTimeout)
}

func TestParseConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
dispatcher:
  priority: 8
stream:
  read_timeout: 500ms
log:
  level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Dispatcher.Priority)
	assert.Equal(t, DefaultTombstones, cfg.Dispatcher.Tombstones)
	assert.Equal(t, 500*time.Millisecond, cfg.Stream.ReadTimeout)
	assert.Equal(t, DefaultStreamTimeout, cfg.Stream.WriteTimeout)
	assert.Equal(t, DefaultMaxEvents, cfg.Reactor.MaxEvents)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestParseConfigRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"syntax":        "dispatcher: [",
		"priority zero": "dispatcher: {priority: 0}",
		"priority high": "dispatcher: {priority: 257}",
		"watermarks":    "stream: {low_watermark: 10, high_watermark: 4}",
		"level":         "log: {level: loud}",
		"format":        "log: {format: xml}",
		"buffer":        "reactor: {max_buffer: -1}",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dispatcher.Priority = 0
	cfg.Reactor.ChunkSize = 0
	cfg.Log.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dispatcher.priority")
	assert.Contains(t, err.Error(), "reactor.chunk_size")
	assert.Contains(t, err.Error(), "log.format")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dispatcher: {priority: 3}\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Dispatcher.Priority)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := DefaultConfig()
	cp := cfg.Clone()
	cp.Dispatcher.Priority = 2
	assert.Equal(t, DefaultPriority, cfg.Dispatcher.Priority)
}
