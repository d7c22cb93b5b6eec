// File: api/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Defines the abstract interface of the event reactor primitive: a
// dispatcher handle, per-watcher event handles and buffered stream handles.
// The event package builds its watcher lifecycle on top of these contracts.

package api

import "time"

// EventCallback is invoked by the reactor when an event activates.
// fd is the descriptor (or signal number) the event was set with.
type EventCallback func(fd int, what Flags)

// Reactor is a single-threaded dispatcher handle.
type Reactor interface {
	// PriorityInit sets the number of priority levels (the ceiling).
	PriorityInit(n int) error

	// Priorities reports the current number of priority levels.
	Priorities() int

	// Loop drives the reactor. It returns 0 when it ran to completion or was
	// stopped, and 1 when no events were registered.
	Loop(flags LoopFlags) (int, error)

	// LoopBreak aborts the running loop after the current callback.
	LoopBreak() error

	// LoopExit stops the loop after timeout; the pass in progress completes.
	LoopExit(timeout time.Duration) error

	// NewEvent allocates an event handle bound to this reactor.
	NewEvent() (EventHandle, error)

	// NewBufferEvent allocates a buffered stream handle bound to this reactor.
	NewBufferEvent(fd int, cb BufferCallbacks) (BufferHandle, error)

	// Free releases the reactor. Further calls fail with ErrReactorClosed.
	Free() error
}

// EventHandle is a per-watcher reactor resource.
type EventHandle interface {
	// Set binds the handle to a descriptor, signal number or timer.
	Set(fd int, what Flags, cb EventCallback) error

	// Add arms the handle. A negative timeout means no timeout.
	Add(timeout time.Duration) error

	// Del disarms the handle; it stays allocated.
	Del() error

	// Pending reports whether the handle is armed for any of what.
	Pending(what Flags) bool

	// PrioritySet assigns a scheduling priority below the reactor ceiling.
	PrioritySet(pri int) error

	// Free disarms and releases the handle.
	Free()
}

// BufferCallbacks are the notifications of a buffered stream.
type BufferCallbacks struct {
	OnRead  func()
	OnWrite func()
	OnError func(what BufferFlags)
}

// BufferHandle is a buffered stream bound to a descriptor.
type BufferHandle interface {
	SetCallbacks(cb BufferCallbacks)
	Enable(what Flags) error
	Disable(what Flags) error
	Enabled() Flags

	// Read drains up to n bytes of buffered input.
	Read(n int) []byte
	// Write queues p for output.
	Write(p []byte) error
	InputLen() int
	OutputLen() int

	SetFD(fd int) error
	FD() int
	SetTimeouts(read, write time.Duration)
	SetWatermark(what Flags, low, high int)
	PrioritySet(pri int) error
	Free()
}
