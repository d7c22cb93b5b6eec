// File: event/timer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Timer watcher. The reactor handle is one-shot; persistence is provided by
// re-enabling the timer after each callback.

package event

import (
	"time"

	"github.com/momentics/hioload-event/api"
)

// Timer fires its callback once its timeout elapses.
type Timer struct {
	watcher
	handle api.EventHandle

	firing    bool
	cancelled bool
	fires     uint64
	rearms    uint64
}

var _ Watcher = (*Timer)(nil)

// NewTimer allocates a timer watcher on b.
func NewTimer(b *Base, name string) (*Timer, error) {
	t := &Timer{}
	if err := t.init(t, b, kindTimer, name); err != nil {
		return nil, err
	}
	h, err := b.reactor.NewEvent()
	if err != nil {
		return nil, newError(KindResourceCreation, "allocate timer handle").WithBase(b).Wrap(err)
	}
	t.handle = h
	return t, nil
}

// Prepare binds the callback and registers the timer. A persistent timer
// re-arms itself with the same timeout after every firing.
func (t *Timer) Prepare(cb Callback, args Args, persist bool) error {
	if err := t.live(); err != nil {
		return err
	}
	if cb == nil {
		return t.errorf(KindInvalidCallback, "nil callback")
	}
	b, err := t.dispatcher()
	if err != nil {
		return err
	}
	if err := t.checkName(b); err != nil {
		return err
	}
	if t.state == StateEnabled {
		if _, err := t.Disable(); err != nil {
			return err
		}
	}
	if err := t.handle.Set(-1, api.EvTimeout, t.onExpire); err != nil {
		return t.reactorError("bind", err)
	}
	if t.priority >= 0 {
		if err := t.handle.PrioritySet(t.priority); err != nil {
			return t.reactorError("priority", err)
		}
	}
	if _, err := t.claim(b); err != nil {
		return err
	}
	t.cb = cb
	t.args = args.clone()
	t.persist = persist
	t.prepared(b)
	return nil
}

// SetTimeout changes the period. An enabled timer is rescheduled from now.
func (t *Timer) SetTimeout(d time.Duration) error {
	if err := t.live(); err != nil {
		return err
	}
	if d < 0 {
		if t.state == StateEnabled {
			return t.errorf(KindInvalidArgument, "enabled timer needs a timeout")
		}
		d = -1
	}
	if t.state == StateEnabled {
		if err := t.handle.Add(d); err != nil {
			return t.reactorError("reschedule", err)
		}
	}
	t.timeout = d
	return nil
}

// SetPriority assigns the dispatch priority of the timer.
func (t *Timer) SetPriority(level int) error {
	if err := t.live(); err != nil {
		return err
	}
	b, err := t.dispatcher()
	if err != nil {
		return err
	}
	if err := t.checkPriority(b, level); err != nil {
		return err
	}
	if err := t.handle.PrioritySet(level); err != nil {
		return t.reactorError("priority", err)
	}
	t.priority = level
	return nil
}

// Fires returns how many times the callback ran.
func (t *Timer) Fires() uint64 { return t.fires }

// Rearms returns how many times the timer re-armed itself.
func (t *Timer) Rearms() uint64 { return t.rearms }

// Pending reports whether the timer is scheduled.
func (t *Timer) Pending() bool {
	return t.state == StateEnabled && t.handle.Pending(api.EvTimeout)
}

// Enable schedules the timer. The timeout must be set.
func (t *Timer) Enable() (bool, error) {
	if err := t.live(); err != nil {
		return false, err
	}
	if (t.state == StatePrepared || t.state == StateDisabled) && t.timeout < 0 {
		return false, t.errorf(KindInvalidArgument, "timer has no timeout")
	}
	return t.enable(func() error { return t.handle.Add(t.timeout) })
}

// Disable unschedules the timer. Called from the timer's own callback it
// cancels the pending re-arm.
func (t *Timer) Disable() (bool, error) {
	if err := t.live(); err != nil {
		return false, err
	}
	if t.firing && t.state == StateDisabled {
		if t.cancelled {
			return false, nil
		}
		t.cancelled = true
		return true, nil
	}
	return t.disable(func() error { return t.handle.Del() })
}

// Invoke fires the timer now, dropping the pending expiry.
func (t *Timer) Invoke() error {
	if t.state != StateEnabled {
		return t.errorf(KindInvalidState, "invoke in state %s", t.state)
	}
	if err := t.handle.Del(); err != nil {
		return t.reactorError("disarm", err)
	}
	return t.onTimer()
}

func (t *Timer) onExpire(int, api.Flags) {
	if err := t.onTimer(); err != nil {
		t.report(err)
	}
}

// onTimer moves the timer to Disabled, runs the callback, then re-arms a
// persistent timer unless the callback disabled, re-enabled or freed it.
func (t *Timer) onTimer() error {
	if t.state != StateEnabled {
		return t.errorf(KindInvalidState, "timer fired while %s", t.state)
	}
	t.markDisabled()
	t.firing = true
	t.cancelled = false
	t.fires++
	t.call()
	t.firing = false

	if !t.persist || t.cancelled || t.state != StateDisabled {
		return nil
	}
	ok, err := t.Enable()
	if err != nil {
		return err
	}
	if ok {
		t.rearms++
	}
	return nil
}

func (t *Timer) Free() error { return t.free(false) }

func (t *Timer) free(baseCall bool) error {
	t.firing = false
	return t.release(baseCall, func() error { return t.handle.Del() }, func() {
		t.handle.Free()
		t.handle = nil
	})
}

// Clone returns an unregistered copy of the timer with the same timeout,
// persistence and callback.
func (t *Timer) Clone() (Watcher, error) {
	if err := t.live(); err != nil {
		return nil, err
	}
	b, err := t.dispatcher()
	if err != nil {
		return nil, err
	}
	c := &Timer{}
	if err := c.init(c, b, kindTimer, ""); err != nil {
		return nil, err
	}
	t.cloneInto(&c.watcher)
	h, err := b.reactor.NewEvent()
	if err != nil {
		return nil, newError(KindResourceCreation, "allocate timer handle").WithWatcher(t).Wrap(err)
	}
	c.handle = h
	if t.state == StateCreated {
		return c, nil
	}
	if err := h.Set(-1, api.EvTimeout, c.onExpire); err != nil {
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
