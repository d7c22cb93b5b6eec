// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the single-threaded event reactor primitive:
// descriptor readiness through epoll (Linux) or poll(2) (other Unix
// platforms), a timer heap, signal delivery, per-priority active queues and
// buffered stream handles. It implements the api.Reactor contracts the event
// package builds its watcher lifecycle on.
//
// A Base and every handle allocated from it must only be used from the
// goroutine that drives Loop.
package reactor
