// File: internal/logging/logger.go
// Author: momentics <momentics@gmail.com>
//
// Process-wide slog setup. The level is held in a LevelVar so a config
// reload can change it while dispatchers are running.

package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu     sync.Mutex
	logger *slog.Logger
	level  = new(slog.LevelVar)
)

// ParseLevel maps a config level name to a slog level. Unknown names map
// to INFO.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w. format is "json" or "text".
func New(w io.Writer, format string, lvl slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Setup installs the process logger on stderr and makes it the slog
// default.
func Setup(format, lvl string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	level.Set(ParseLevel(lvl))
	logger = New(os.Stderr, format, level)
	slog.SetDefault(logger)
	return logger
}

// SetLevel changes the level of the process logger.
func SetLevel(lvl string) {
	level.Set(ParseLevel(lvl))
}

// Level returns the current level of the process logger.
func Level() slog.Level { return level.Level() }

// Get returns the process logger, installing a JSON INFO logger if Setup
// was never called.
func Get() *slog.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		return Setup("json", "info")
	}
	return l
}

// WithComponent returns a logger with the component field set.
func WithComponent(name string) *slog.Logger {
	return Get().With(slog.String("component", name))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
