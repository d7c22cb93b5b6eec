// File: event/event.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Descriptor and signal watcher.

package event

import (
	"time"

	"github.com/momentics/hioload-event/api"
)

// Event watches a descriptor for readiness or a signal number for delivery,
// optionally bounded by a timeout.
type Event struct {
	watcher
	handle api.EventHandle
	fd     int
	what   api.Flags
	fired  api.Flags
}

var _ Watcher = (*Event)(nil)

// NewEvent allocates an event watcher on b. An empty name is replaced by a
// generated one; a name already registered on b is rejected before anything
// is allocated.
func NewEvent(b *Base, name string) (*Event, error) {
	e := &Event{fd: -1}
	if err := e.init(e, b, kindEvent, name); err != nil {
		return nil, err
	}
	h, err := b.reactor.NewEvent()
	if err != nil {
		return nil, newError(KindResourceCreation, "allocate event handle").WithBase(b).Wrap(err)
	}
	e.handle = h
	return e, nil
}

func validFlags(fd int, what api.Flags) bool {
	if what&^(api.EvReadWrite|api.EvSignal|api.EvTimeout|api.EvPersist) != 0 {
		return false
	}
	io := what&api.EvReadWrite != 0
	switch {
	case io && what&api.EvSignal != 0:
		return false
	case io:
		return fd >= 0
	case what&api.EvSignal != 0:
		return fd > 0
	}
	return true
}

// Prepare binds the watcher to fd (a signal number with EvSignal) and the
// callback, and registers it with its dispatcher. EvPersist keeps the
// watcher enabled after it fires.
func (e *Event) Prepare(fd int, what api.Flags, cb Callback, args Args) error {
	if err := e.live(); err != nil {
		return err
	}
	if cb == nil {
		return e.errorf(KindInvalidCallback, "nil callback")
	}
	if !validFlags(fd, what) {
		return e.errorf(KindInvalidArgument, "descriptor %d with events %s", fd, what)
	}
	b, err := e.dispatcher()
	if err != nil {
		return err
	}
	if err := e.checkName(b); err != nil {
		return err
	}
	if e.state == StateEnabled {
		if _, err := e.Disable(); err != nil {
			return err
		}
	}
	if err := e.handle.Set(fd, what, e.onReady); err != nil {
		return e.reactorError("bind", err)
	}
	if e.priority >= 0 {
		if err := e.handle.PrioritySet(e.priority); err != nil {
			return e.reactorError("priority", err)
		}
	}
	if _, err := e.claim(b); err != nil {
		return err
	}
	e.fd = fd
	e.what = what
	e.cb = cb
	e.args = args.clone()
	e.persist = what&api.EvPersist != 0
	e.prepared(b)
	return nil
}

// SetTimeout bounds the wait of the watcher. A negative value removes the
// bound. An enabled watcher is rescheduled at once.
func (e *Event) SetTimeout(d time.Duration) error {
	if err := e.live(); err != nil {
		return err
	}
	if d < 0 {
		d = -1
	}
	if e.state == StateEnabled {
		if err := e.handle.Add(d); err != nil {
			return e.reactorError("reschedule", err)
		}
	}
	e.timeout = d
	return nil
}

// SetPriority assigns the dispatch priority, bounded by the dispatcher's
// ceiling. Lower levels run first.
func (e *Event) SetPriority(level int) error {
	if err := e.live(); err != nil {
		return err
	}
	b, err := e.dispatcher()
	if err != nil {
		return err
	}
	if err := e.checkPriority(b, level); err != nil {
		return err
	}
	if err := e.handle.PrioritySet(level); err != nil {
		return e.reactorError("priority", err)
	}
	e.priority = level
	return nil
}

func (e *Event) FD() int           { return e.fd }
func (e *Event) Events() api.Flags { return e.what }
func (e *Event) Fired() api.Flags  { return e.fired }
func (e *Event) Priority() int     { return e.priority }

// Pending reports whether the enabled watcher is armed for any of f.
func (e *Event) Pending(f api.Flags) bool {
	return e.state == StateEnabled && e.handle.Pending(f)
}

func (e *Event) Enable() (bool, error) {
	return e.enable(func() error { return e.handle.Add(e.timeout) })
}

func (e *Event) Disable() (bool, error) {
	return e.disable(func() error { return e.handle.Del() })
}

// Invoke runs the callback. A non-persistent watcher is disabled before the
// callback runs, so the callback may enable it again.
func (e *Event) Invoke() error {
	if e.state != StateEnabled {
		return e.errorf(KindInvalidState, "invoke in state %s", e.state)
	}
	if !e.persist {
		if _, err := e.Disable(); err != nil {
			return err
		}
	}
	e.call()
	return nil
}

// onReady runs on the reactor, which has already disarmed a non-persistent
// handle.
func (e *Event) onReady(_ int, what api.Flags) {
	if e.state != StateEnabled {
		e.report(e.errorf(KindInvalidState, "event fired while %s", e.state))
		return
	}
	e.fired = what
	if !e.persist {
		e.markDisabled()
	}
	e.call()
}

func (e *Event) Free() error { return e.free(false) }

func (e *Event) free(baseCall bool) error {
	return e.release(baseCall, func() error { return e.handle.Del() }, func() {
		e.handle.Free()
		e.handle = nil
	})
}

// Clone returns an unregistered copy with a generated name and a handle of
// its own. The copy starts Disabled, or Created when e was never prepared.
func (e *Event) Clone() (Watcher, error) {
	if err := e.live(); err != nil {
		return nil, err
	}
	b, err := e.dispatcher()
	if err != nil {
		return nil, err
	}
	c := &Event{fd: e.fd, what: e.what}
	if err := c.init(c, b, kindEvent, ""); err != nil {
		return nil, err
	}
	e.cloneInto(&c.watcher)
	h, err := b.reactor.NewEvent()
	if err != nil {
		return nil, newError(KindResourceCreation, "allocate event handle").WithWatcher(e).Wrap(err)
	}
	c.handle = h
	if e.state == StateCreated {
		return c, nil
	}
	if err := h.Set(c.fd, c.what, c.onReady); err != nil {
		h.Free()
		return nil, c.reactorError("bind", err)
	}
	if c.priority >= 0 {
		if err := h.PrioritySet(c.priority); err != nil {
			h.Free()
			return nil, c.reactorError("priority", err)
		}
	}
	c.state = StateDisabled
	return c, nil
}
