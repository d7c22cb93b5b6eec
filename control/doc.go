// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, hot reload, runtime metrics and debug introspection for
// hioload-event dispatchers.
//
// Provides:
//   - YAML configuration with defaults and validation
//   - A config store with reload listeners and fsnotify-driven file reload
//   - A metrics registry of dispatcher counters
//   - Debug probe registration and state export
package control
