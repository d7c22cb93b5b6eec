// File: event/watcher.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Watcher capability set and the lifecycle shared by every variant.

package event

import (
	"errors"
	"maps"
	"time"
	"weak"

	"github.com/momentics/hioload-event/api"
)

// State is a watcher lifecycle state.
type State int

const (
	StateCreated State = iota
	StatePrepared
	StateEnabled
	StateDisabled
	StateFreed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StatePrepared:
		return "prepared"
	case StateEnabled:
		return "enabled"
	case StateDisabled:
		return "disabled"
	case StateFreed:
		return "freed"
	default:
		return "unknown"
	}
}

// Callback is invoked with the watcher that fired. Typed context is best
// captured by the closure; Args carries the loosely keyed bundle.
type Callback func(w Watcher)

// Args is the argument bundle handed to callbacks through Arguments.
type Args map[string]any

func (a Args) clone() Args {
	if a == nil {
		return nil
	}
	return maps.Clone(a)
}

// Watcher is the capability set shared by Event, Timer and BufferedStream.
// It is sealed: only this package provides implementations.
type Watcher interface {
	Name() string
	// Base returns the owning dispatcher, or nil once it is gone.
	Base() *Base
	State() State
	Arguments() Args
	Timeout() time.Duration
	Enable() (bool, error)
	Disable() (bool, error)
	Invoke() error
	Free() error
	// Check reports whether the watcher still holds a live handle.
	Check() bool
	// Clone returns an unregistered copy. The copy starts Disabled, or
	// Created when the source was never prepared and has nothing to bind.
	Clone() (Watcher, error)

	// free tears the watcher down. baseCall is set when the dispatcher
	// drives the teardown, in which case the watcher must not call back
	// into RemoveEvent.
	free(baseCall bool) error
}

const (
	kindEvent  = "event"
	kindTimer  = "timer"
	kindStream = "stream"
)

// watcher holds the state common to all variants.
type watcher struct {
	self     Watcher
	kind     string
	name     string
	base     weak.Pointer[Base]
	state    State
	cb       Callback
	args     Args
	timeout  time.Duration
	persist  bool
	priority int // -1: reactor default
}

func (w *watcher) init(self Watcher, b *Base, kind, name string) error {
	if b == nil {
		return newError(KindInvalidArgument, "nil dispatcher")
	}
	if b.freed {
		return newError(KindInvalidState, "dispatcher freed").WithBase(b)
	}
	if name == "" {
		name = b.generateName(kind)
	} else if b.Exists(name) {
		return newError(KindRegistrationConflict, "name %q already registered", name).WithBase(b)
	}
	w.self = self
	w.kind = kind
	w.name = name
	w.base = weak.Make(b)
	w.state = StateCreated
	w.timeout = -1
	w.priority = -1
	return nil
}

func (w *watcher) Name() string           { return w.name }
func (w *watcher) Base() *Base            { return w.base.Value() }
func (w *watcher) State() State           { return w.state }
func (w *watcher) Arguments() Args        { return w.args }
func (w *watcher) Timeout() time.Duration { return w.timeout }
func (w *watcher) Check() bool            { return w.state != StateFreed }

// Persistent reports whether the watcher stays armed after firing.
func (w *watcher) Persistent() bool { return w.persist }

func (w *watcher) errorf(kind ErrorKind, format string, args ...any) *Error {
	return newError(kind, format, args...).WithWatcher(w.self)
}

func (w *watcher) live() error {
	if w.state == StateFreed {
		return w.errorf(KindInvalidState, "watcher freed")
	}
	return nil
}

// dispatcher resolves the back-reference.
func (w *watcher) dispatcher() (*Base, error) {
	b := w.base.Value()
	if b == nil || b.freed {
		return nil, w.errorf(KindInvalidState, "dispatcher released")
	}
	return b, nil
}

// claim makes sure w is the registry entry for its name. It reports whether
// this call inserted it.
func (w *watcher) claim(b *Base) (bool, error) {
	switch cur, ok := b.events[w.name]; {
	case ok && cur == w.self:
		return false, nil
	case ok:
		return false, w.errorf(KindRegistrationConflict, "name %q already registered", w.name)
	}
	if !b.RegisterEvent(w.self) {
		return false, w.errorf(KindRegistrationConflict, "name %q rejected", w.name)
	}
	return true, nil
}

func (w *watcher) checkName(b *Base) error {
	if cur, ok := b.events[w.name]; ok && cur != w.self {
		return w.errorf(KindRegistrationConflict, "name %q already registered", w.name)
	}
	return nil
}

// prepared records a successful prepare.
func (w *watcher) prepared(b *Base) {
	w.state = StatePrepared
	b.EnableEvent(w.name)
}

// enable arms the watcher from Prepared or Disabled.
func (w *watcher) enable(arm func() error) (bool, error) {
	if err := w.live(); err != nil {
		return false, err
	}
	if w.state == StateEnabled || w.state == StateCreated {
		return false, nil
	}
	b, err := w.dispatcher()
	if err != nil {
		return false, err
	}
	inserted, err := w.claim(b)
	if err != nil {
		return false, err
	}
	if err := arm(); err != nil {
		if inserted {
			b.unregister(w.name)
		}
		return false, w.reactorError("arm", err)
	}
	w.state = StateEnabled
	b.EnableEvent(w.name)
	return true, nil
}

// disable disarms an enabled watcher and keeps its handle.
func (w *watcher) disable(disarm func() error) (bool, error) {
	if err := w.live(); err != nil {
		return false, err
	}
	if w.state != StateEnabled {
		return false, nil
	}
	if err := disarm(); err != nil {
		return false, w.reactorError("disarm", err)
	}
	w.markDisabled()
	return true, nil
}

func (w *watcher) markDisabled() {
	w.state = StateDisabled
	if b := w.base.Value(); b != nil {
		b.DisableEvent(w.name)
	}
}

// release is the shared teardown. A disarm failure aborts a watcher-driven
// teardown but not a dispatcher-driven one.
func (w *watcher) release(baseCall bool, disarm func() error, freeHandle func()) error {
	if w.state == StateFreed {
		return w.errorf(KindInvalidState, "watcher already freed")
	}
	var derr error
	if w.state == StateEnabled {
		if derr = disarm(); derr != nil && !baseCall {
			return w.reactorError("disarm", derr)
		}
	}
	freeHandle()
	w.state = StateFreed
	w.cb = nil
	w.args = nil
	if b := w.base.Value(); b != nil {
		if !baseCall && !b.freed {
			b.RemoveWatcher(w.self)
		}
		b.log.Debug("watcher freed", "watcher", w.name, "kind", w.kind, "by_base", baseCall)
	}
	if derr != nil {
		return w.reactorError("disarm", derr)
	}
	return nil
}

// call runs cb and accounts for it on the dispatcher.
func (w *watcher) call() {
	if b := w.base.Value(); b != nil {
		b.invoked++
	}
	if w.cb != nil {
		w.cb(w.self)
	}
}

// report hands a failure raised on the dispatch path to the dispatcher.
func (w *watcher) report(err error) {
	if b := w.base.Value(); b != nil {
		b.report(err)
	}
}

// reactorError translates reactor sentinels into error kinds.
func (w *watcher) reactorError(op string, err error) *Error {
	kind := KindDispatch
	switch {
	case errors.Is(err, api.ErrHandleFreed), errors.Is(err, api.ErrReactorClosed),
		errors.Is(err, api.ErrHandleNotSet), errors.Is(err, api.ErrEventActive):
		kind = KindInvalidState
	case errors.Is(err, api.ErrInvalidArgument):
		kind = KindInvalidArgument
	case errors.Is(err, api.ErrBufferFull):
		kind = KindIO
	}
	return w.errorf(kind, "%s", op).Wrap(err)
}

func (w *watcher) checkPriority(b *Base, level int) error {
	if level < 0 || level >= b.priority {
		return w.errorf(KindConfiguration, "priority %d outside [0,%d)", level, b.priority)
	}
	return nil
}

// cloneInto copies the configuration shared by all variants.
func (w *watcher) cloneInto(c *watcher) {
	c.cb = w.cb
	c.args = w.args.clone()
	c.timeout = w.timeout
	c.persist = w.persist
	c.priority = w.priority
}
