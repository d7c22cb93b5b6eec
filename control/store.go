// control/store.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe holder of the active configuration with reload listeners.

package control

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/momentics/hioload-event/internal/logging"
)

// ConfigStore keeps the active Config and notifies listeners when it is
// replaced.
type ConfigStore struct {
	mu        sync.RWMutex
	cfg       *Config
	listeners []func(*Config)

	watcher *fsnotify.Watcher
	done    chan struct{}
	log     *slog.Logger
}

// NewConfigStore returns a store holding cfg, or the defaults when cfg is nil.
func NewConfigStore(cfg *Config) *ConfigStore {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &ConfigStore{
		cfg: cfg.Clone(),
		log: logging.WithComponent("config"),
	}
}

// Get returns a copy of the active configuration.
func (cs *ConfigStore) Get() *Config {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.cfg.Clone()
}

// Set validates cfg, makes it active and runs the reload listeners on the
// calling goroutine. An invalid cfg leaves the store unchanged.
func (cs *ConfigStore) Set(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cs.mu.Lock()
	cs.cfg = cfg.Clone()
	listeners := slices.Clone(cs.listeners)
	cs.mu.Unlock()

	for _, fn := range listeners {
		fn(cfg.Clone())
	}
	return nil
}

// OnReload registers a listener called with every new configuration.
func (cs *ConfigStore) OnReload(fn func(*Config)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
