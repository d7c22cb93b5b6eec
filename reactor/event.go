// File: reactor/event.go
// Author: momentics <momentics@gmail.com>
//
// Per-watcher event handle: one descriptor, signal or timer bound to a Base.

package reactor

import (
	"fmt"
	"time"

	"github.com/momentics/hioload-event/api"
)

// Event is a reactor event handle. It implements api.EventHandle.
type Event struct {
	base *Base
	fd   int
	what api.Flags
	cb   api.EventCallback
	pri  int

	timeout  time.Duration
	deadline time.Time
	heapIdx  int

	inserted bool
	active   bool
	res      api.Flags
	gen      uint64
	freed    bool
	internal bool
}

var _ api.EventHandle = (*Event)(nil)

// NewEvent allocates an unset handle at the middle priority.
func (b *Base) NewEvent() (api.EventHandle, error) {
	if b.closed {
		return nil, api.ErrReactorClosed
	}
	return b.newEvent(), nil
}

func (b *Base) newEvent() *Event {
	return &Event{
		base:    b,
		fd:      -1,
		pri:     len(b.active) / 2,
		timeout: -1,
		heapIdx: -1,
	}
}

// Set binds the handle. For EvSignal, fd is the signal number. A handle
// must be disarmed before it is set again.
func (e *Event) Set(fd int, what api.Flags, cb api.EventCallback) error {
	if e.freed {
		return api.ErrHandleFreed
	}
	if e.base.closed {
		return api.ErrReactorClosed
	}
	if cb == nil {
		return fmt.Errorf("reactor: nil callback: %w", api.ErrInvalidArgument)
	}
	io := what&(api.EvRead|api.EvWrite) != 0
	if io && what&api.EvSignal != 0 {
		return fmt.Errorf("reactor: signal events cannot watch read/write: %w", api.ErrInvalidArgument)
	}
	if io && fd < 0 {
		return fmt.Errorf("reactor: invalid descriptor %d: %w", fd, api.ErrInvalidArgument)
	}
	if what&api.EvSignal != 0 && fd <= 0 {
		return fmt.Errorf("reactor: invalid signal %d: %w", fd, api.ErrInvalidArgument)
	}
	if e.inserted || e.active {
		return api.ErrEventActive
	}
	e.fd = fd
	e.what = what
	e.cb = cb
	return nil
}

// Add arms the handle. Adding an armed handle reschedules its timeout.
func (e *Event) Add(timeout time.Duration) error {
	if e.freed {
		return api.ErrHandleFreed
	}
	b := e.base
	if b.closed {
		return api.ErrReactorClosed
	}
	if e.cb == nil {
		return api.ErrHandleNotSet
	}
	if !e.inserted {
		switch {
		case e.what&(api.EvRead|api.EvWrite) != 0:
			if err := b.ioAdd(e); err != nil {
				return err
			}
		case e.what&api.EvSignal != 0:
			b.sigs.add(e)
		}
		e.inserted = true
		if !e.internal {
			b.count++
		}
	}
	e.timeout = timeout
	if timeout >= 0 {
		b.schedule(e, time.Now().Add(timeout))
	} else {
		b.unschedule(e)
	}
	return nil
}

// Del disarms the handle and drops a pending activation.
func (e *Event) Del() error {
	if e.freed {
		return api.ErrHandleFreed
	}
	b := e.base
	if e.active {
		e.active = false
		e.res = 0
		if !b.closed {
			b.nactive--
		}
	}
	if !e.inserted {
		return nil
	}
	e.inserted = false
	if b.closed {
		return nil
	}
	if !e.internal {
		b.count--
	}
	b.unschedule(e)

	switch {
	case e.what&(api.EvRead|api.EvWrite) != 0:
		return b.ioDel(e)
	case e.what&api.EvSignal != 0:
		b.sigs.del(e)
	}
	return nil
}

// Pending reports whether the handle is armed for any condition in what.
func (e *Event) Pending(what api.Flags) bool {
	if e.freed || e.base.closed || !e.inserted {
		return false
	}
	armed := e.what & (api.EvRead | api.EvWrite | api.EvSignal)
	if e.heapIdx >= 0 {
		armed |= api.EvTimeout
	}
	return armed&what != 0
}

// PrioritySet assigns the queue the handle's activations go to.
func (e *Event) PrioritySet(pri int) error {
	if e.freed {
		return api.ErrHandleFreed
	}
	if e.active {
		return api.ErrEventActive
	}
	if pri < 0 || pri >= len(e.base.active) {
		return fmt.Errorf("reactor: priority %d outside [0,%d): %w", pri, len(e.base.active), api.ErrInvalidArgument)
	}
	e.pri = pri
	return nil
}

// Priority returns the handle's priority.
func (e *Event) Priority() int { return e.pri }

// Free disarms and releases the handle. It is safe to call twice.
func (e *Event) Free() {
	if e.freed {
		return
	}
	_ = e.Del()
	e.freed = true
	e.cb = nil
}
