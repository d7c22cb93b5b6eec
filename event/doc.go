// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package event is the object layer over the reactor primitive.
//
// A Base (the dispatcher) owns every watcher registered on it: Event for
// descriptors and signals, Timer for timeouts, BufferedStream for buffered
// stream I/O. Watchers keep only a weak reference back to their Base.
// Teardown runs one way. Base.Free frees each registered watcher without
// letting it call back into the registry, while a watcher's own Free
// deregisters it.
//
// Everything in this package, callbacks included, runs on the goroutine
// that drives Base.Loop.
package event
