// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Dispatcher configuration: YAML schema, defaults and validation.

package control

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPriority is the priority ceiling of a dispatcher.
	DefaultPriority = 30
	// MaxPriority is the largest ceiling the reactor accepts.
	MaxPriority = 256
	// DefaultTombstones bounds the cache of recently freed watcher names.
	DefaultTombstones = 1024

	DefaultMaxEvents = 128
	DefaultChunkSize = 4096
	DefaultMaxBuffer = 64 << 20

	DefaultStreamPriority = 10
	DefaultStreamTimeout  = 30 * time.Second
	DefaultLowWatermark   = 1
	DefaultHighWatermark  = 0xffffff
)

// Config is the root configuration document.
type Config struct {
	Dispatcher DispatcherConfig `yaml:"dispatcher"`
	Reactor    ReactorConfig    `yaml:"reactor"`
	Stream     StreamConfig     `yaml:"stream"`
	Log        LogConfig        `yaml:"log"`
}

type DispatcherConfig struct {
	Priority   int `yaml:"priority"`
	Tombstones int `yaml:"tombstones"`
}

type ReactorConfig struct {
	MaxEvents int `yaml:"max_events"`
	ChunkSize int `yaml:"chunk_size"`
	MaxBuffer int `yaml:"max_buffer"`
}

// StreamConfig holds the defaults applied to new buffered streams.
// Durations are written as Go duration strings ("30s", "500ms").
type StreamConfig struct {
	Priority      int           `yaml:"priority"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	LowWatermark  int           `yaml:"low_watermark"`
	HighWatermark int           `yaml:"high_watermark"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Dispatcher: DispatcherConfig{
			Priority:   DefaultPriority,
			Tombstones: DefaultTombstones,
		},
		Reactor: ReactorConfig{
			MaxEvents: DefaultMaxEvents,
			ChunkSize: DefaultChunkSize,
			MaxBuffer: DefaultMaxBuffer,
		},
		Stream: StreamConfig{
			Priority:      DefaultStreamPriority,
			ReadTimeout:   DefaultStreamTimeout,
			WriteTimeout:  DefaultStreamTimeout,
			LowWatermark:  DefaultLowWatermark,
			HighWatermark: DefaultHighWatermark,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig reads and validates a YAML file. Keys missing from the file
// keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes a YAML document over the defaults and validates it.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if p := c.Dispatcher.Priority; p < 1 || p > MaxPriority {
		errs = append(errs, fmt.Errorf("dispatcher.priority %d outside [1,%d]", p, MaxPriority))
	}
	if c.Dispatcher.Tombstones <= 0 {
		errs = append(errs, errors.New("dispatcher.tombstones must be positive"))
	}
	if c.Reactor.MaxEvents <= 0 {
		errs = append(errs, errors.New("reactor.max_events must be positive"))
	}
	if c.Reactor.ChunkSize <= 0 {
		errs = append(errs, errors.New("reactor.chunk_size must be positive"))
	}
	if c.Reactor.MaxBuffer < 0 {
		errs = append(errs, errors.New("reactor.max_buffer must not be negative"))
	}
	s := c.Stream
	if s.Priority < 0 {
		errs = append(errs, errors.New("stream.priority must not be negative"))
	}
	if s.ReadTimeout < 0 || s.WriteTimeout < 0 {
		errs = append(errs, errors.New("stream timeouts must not be negative"))
	}
	if s.LowWatermark < 0 || s.HighWatermark < 0 {
		errs = append(errs, errors.New("stream watermarks must not be negative"))
	} else if s.HighWatermark > 0 && s.LowWatermark > s.HighWatermark {
		errs = append(errs, fmt.Errorf("stream.low_watermark %d above high_watermark %d", s.LowWatermark, s.HighWatermark))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q unknown", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format %q unknown", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Clone returns a copy safe to hand to another goroutine.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
