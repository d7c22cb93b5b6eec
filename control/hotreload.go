// control/hotreload.go
// Author: momentics <momentics@gmail.com>
//
// File-driven hot reload for ConfigStore. Listeners run on the watch
// goroutine, so they must only touch state that is safe to share.

package control

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store from path every time the file is written or
// replaced, until Close. The parent directory is watched so editors that
// save through a rename are seen too.
func (cs *ConfigStore) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %q: %w", filepath.Dir(abs), err)
	}

	cs.mu.Lock()
	if cs.watcher != nil {
		cs.mu.Unlock()
		_ = w.Close()
		return errors.New("config store is already watching a file")
	}
	cs.watcher = w
	cs.done = make(chan struct{})
	done := cs.done
	cs.mu.Unlock()

	go cs.watchLoop(w, abs, done)
	return nil
}

func (cs *ConfigStore) watchLoop(w *fsnotify.Watcher, path string, done <-chan struct{}) {
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				if err := cs.Reload(path); err != nil {
					cs.log.Warn("config reload rejected", "path", path, "error", err)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			cs.log.Warn("config watcher error", "error", err)
		case <-done:
			return
		}
	}
}

// Reload loads path and makes it the active configuration.
func (cs *ConfigStore) Reload(path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	if err := cs.Set(cfg); err != nil {
		return err
	}
	cs.log.Info("config reloaded", "path", path)
	return nil
}

// Close stops watching. It is safe to call when Watch was never called.
func (cs *ConfigStore) Close() error {
	cs.mu.Lock()
	w, done := cs.watcher, cs.done
	cs.watcher, cs.done = nil, nil
	cs.mu.Unlock()
	if w == nil {
		return nil
	}
	close(done)
	return w.Close()
}
