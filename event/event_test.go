//go:build unix

package event_test

import (
	"testing"
	"time"

	"github.com/momentics/hioload-event/api"
	"github.com/momentics/hioload-event/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestReadinessFiresOnce(t *testing.T) {
	b := newBase(t, event.DefaultPriority)
	r, w := newPipe(t)

	var (
		calls int
		name  string
		args  event.Args
	)
	e, err := event.NewEvent(b, "w")
	require.NoError(t, err)
	require.NoError(t, e.Prepare(r, api.EvRead, func(w event.Watcher) {
		calls++
		name = w.Name()
		args = w.Arguments()
	}, event.Args{"k": 1}))
	ok, err := e.Enable()
	require.NoError(t, err)
	require.True(t, ok)

	writeAll(t, w, "x")
	status, err := b.Loop(api.LoopNonBlock)
	require.NoError(t, err)
	assert.Equal(t, event.LoopCompleted, status)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "w", name)
	assert.Equal(t, event.Args{"k": 1}, args)
	assert.Equal(t, api.EvRead, e.Fired())
	assert.Equal(t, event.StateDisabled, e.State())
	assert.True(t, b.IsEventDisabled("w"))

	_, err = b.Loop(api.LoopNonBlock)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestReenableInsideCallback(t *testing.T) {
	b := newBase(t, 4)
	r, w := newPipe(t)

	var (
		calls   int
		state   event.State
		pending bool
		rearmed bool
		buf     [8]byte
	)
	e, err := event.NewEvent(b, "rd")
	require.NoError(t, err)
	require.NoError(t, e.Prepare(r, api.EvRead, func(wt event.Watcher) {
		calls++
		_, _ = unix.Read(r, buf[:])
		if calls == 1 {
			state = wt.State()
			pending = e.Pending(api.EvRead)
			ok, err := wt.Enable()
			assert.NoError(t, err)
			rearmed = ok
		}
	}, nil))
	_, err = e.Enable()
	require.NoError(t, err)

	writeAll(t, w, "x")
	_, err = b.Loop(api.LoopNonBlock)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	assert.Equal(t, event.StateDisabled, state)
	assert.False(t, pending)
	assert.True(t, rearmed)
	assert.Equal(t, event.StateEnabled, e.State())
	assert.False(t, b.IsEventDisabled("rd"))

	writeAll(t, w, "y")
	_, err = b.Loop(api.LoopNonBlock)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, event.StateDisabled, e.State())
}

func TestPersistentEventStaysEnabled(t *testing.T) {
	b := newBase(t, 4)
	r, w := newPipe(t)

	calls := 0
	e, err := event.NewEvent(b, "")
	require.NoError(t, err)
	require.NoError(t, e.Prepare(r, api.EvRead|api.EvPersist, func(event.Watcher) { calls++ }, nil))
	assert.True(t, e.Persistent())
	_, err = e.Enable()
	require.NoError(t, err)

	writeAll(t, w, "x")
	for range 2 {
		_, err = b.Loop(api.LoopNonBlock)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls, "unread data keeps the descriptor readable")
	assert.Equal(t, event.StateEnabled, e.State())
	assert.True(t, e.Pending(api.EvRead))
}

func TestEventInvoke(t *testing.T) {
	b := newBase(t, 4)
	calls := 0
	e, err := event.NewEvent(b, "e")
	require.NoError(t, err)
	require.NoError(t, e.Prepare(-1, api.EvTimeout, func(event.Watcher) { calls++ }, nil))

	assert.ErrorIs(t, e.Invoke(), event.ErrInvalidState)

	require.NoError(t, e.SetTimeout(time.Hour))
	_, err = e.Enable()
	require.NoError(t, err)
	require.NoError(t, e.Invoke())
	assert.Equal(t, 1, calls)
	assert.Equal(t, event.StateDisabled, e.State())
	assert.False(t, e.Pending(api.EvTimeout))
}

func TestEnableBeforePrepare(t *testing.T) {
	b := newBase(t, 4)
	e, err := event.NewEvent(b, "e")
	require.NoError(t, err)

	ok, err := e.Enable()
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = e.Disable()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, event.StateCreated, e.State())
	assert.False(t, b.Exists("e"))
}

func TestEventPrepareValidation(t *testing.T) {
	b := newBase(t, 4)
	e, err := event.NewEvent(b, "e")
	require.NoError(t, err)

	assert.ErrorIs(t, e.Prepare(3, api.EvRead, nil, nil), event.ErrInvalidCallback)
	assert.ErrorIs(t, e.Prepare(-1, api.EvRead, noop, nil), event.ErrInvalidArgument)
	assert.ErrorIs(t, e.Prepare(2, api.EvRead|api.EvSignal, noop, nil), event.ErrInvalidArgument)
	assert.ErrorIs(t, e.Prepare(0, api.EvSignal, noop, nil), event.ErrInvalidArgument)
	assert.ErrorIs(t, e.Prepare(0, api.Flags(0x80), noop, nil), event.ErrInvalidArgument)
	assert.Equal(t, event.StateCreated, e.State())
	assert.Zero(t, b.Len())
}

func TestPrepareAgainRebinds(t *testing.T) {
	b := newBase(t, 4)
	r, _ := newPipe(t)
	e, err := event.NewEvent(b, "e")
	require.NoError(t, err)
	require.NoError(t, e.Prepare(r, api.EvRead|api.EvPersist, noop, nil))
	_, err = e.Enable()
	require.NoError(t, err)

	require.NoError(t, e.Prepare(-1, api.EvTimeout, noop, event.Args{"n": 2}))
	assert.Equal(t, event.StatePrepared, e.State())
	assert.Equal(t, -1, e.FD())
	assert.Equal(t, api.EvTimeout, e.Events())
	assert.False(t, e.Persistent())
	assert.Equal(t, 1, b.Len())
	assert.False(t, b.IsEventDisabled("e"))
}

func TestEventClone(t *testing.T) {
	b := newBase(t, 4)
	r, w := newPipe(t)
	args := event.Args{"k": 1}

	calls := map[string]int{}
	e, err := event.NewEvent(b, "orig")
	require.NoError(t, err)
	require.NoError(t, e.Prepare(r, api.EvRead|api.EvPersist, func(w event.Watcher) { calls[w.Name()]++ }, args))
	require.NoError(t, e.SetPriority(1))
	_, err = e.Enable()
	require.NoError(t, err)

	cw, err := e.Clone()
	require.NoError(t, err)
	c := cw.(*event.Event)
	assert.NotEqual(t, e.Name(), c.Name())
	assert.Same(t, b, c.Base())
	assert.Equal(t, event.StateDisabled, c.State())
	assert.False(t, b.Exists(c.Name()))
	assert.Equal(t, r, c.FD())
	assert.Equal(t, 1, c.Priority())
	assert.Equal(t, args, c.Arguments())

	args["k"] = 2
	assert.Equal(t, 1, e.Arguments()["k"], "prepare copies the bundle")

	ok, err := c.Enable()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, b.Exists(c.Name()))

	writeAll(t, w, "x")
	_, err = b.Loop(api.LoopNonBlock)
	require.NoError(t, err)
	assert.Equal(t, 1, calls["orig"])
	assert.Equal(t, 1, calls[c.Name()])
}

func TestCloneOfUnpreparedEvent(t *testing.T) {
	b := newBase(t, 4)
	e, err := event.NewEvent(b, "")
	require.NoError(t, err)
	c, err := e.Clone()
	require.NoError(t, err)
	assert.Equal(t, event.StateCreated, c.State())
	require.NoError(t, c.Free())
}

func TestFreedEventRejectsEverything(t *testing.T) {
	b := newBase(t, 4)
	e, err := event.NewEvent(b, "e")
	require.NoError(t, err)
	require.NoError(t, e.Prepare(-1, api.EvTimeout, noop, event.Args{"a": 1}))
	require.NoError(t, e.Free())

	assert.False(t, e.Check())
	assert.Nil(t, e.Arguments())
	_, err = e.Enable()
	assert.ErrorIs(t, err, event.ErrInvalidState)
	_, err = e.Disable()
	assert.ErrorIs(t, err, event.ErrInvalidState)
	assert.ErrorIs(t, e.Invoke(), event.ErrInvalidState)
	assert.ErrorIs(t, e.Prepare(-1, api.EvTimeout, noop, nil), event.ErrInvalidState)
	assert.ErrorIs(t, e.SetTimeout(time.Second), event.ErrInvalidState)
	_, err = e.Clone()
	assert.ErrorIs(t, err, event.ErrInvalidState)
	assert.ErrorIs(t, e.Free(), event.ErrInvalidState)
}

func TestCallbackFreesSibling(t *testing.T) {
	sink := &errorSink{}
	b := newBase(t, 4, sink.option())
	r, w := newPipe(t)

	var second *event.Event
	secondCalls := 0
	first, err := event.NewEvent(b, "first")
	require.NoError(t, err)
	require.NoError(t, first.Prepare(r, api.EvRead|api.EvPersist, func(event.Watcher) {
		require.NoError(t, second.Free())
	}, nil))

	second, err = event.NewEvent(b, "second")
	require.NoError(t, err)
	require.NoError(t, second.Prepare(r, api.EvRead|api.EvPersist, func(event.Watcher) { secondCalls++ }, nil))

	_, err = first.Enable()
	require.NoError(t, err)
	_, err = second.Enable()
	require.NoError(t, err)

	writeAll(t, w, "x")
	_, err = b.Loop(api.LoopNonBlock)
	require.NoError(t, err)

	assert.Zero(t, secondCalls)
	assert.Equal(t, event.StateFreed, second.State())
	assert.Equal(t, []string{"first"}, b.Names())
	assert.Empty(t, sink.errs)
}

func TestCallbackFreesItself(t *testing.T) {
	sink := &errorSink{}
	b := newBase(t, 4, sink.option())
	r, w := newPipe(t)

	e, err := event.NewEvent(b, "self")
	require.NoError(t, err)
	require.NoError(t, e.Prepare(r, api.EvRead|api.EvPersist, func(w event.Watcher) {
		require.NoError(t, w.Free())
	}, nil))
	_, err = e.Enable()
	require.NoError(t, err)

	writeAll(t, w, "x")
	_, err = b.Loop(api.LoopNonBlock)
	require.NoError(t, err)

	assert.Equal(t, event.StateFreed, e.State())
	assert.False(t, b.Exists("self"))
	assert.Empty(t, sink.errs)
	status, err := b.Loop(api.LoopNonBlock)
	require.NoError(t, err)
	assert.Equal(t, event.LoopNoEvents, status)
}

func TestEventTimeout(t *testing.T) {
	b := newBase(t, 4)
	r, _ := newPipe(t)
	e, err := event.NewEvent(b, "")
	require.NoError(t, err)
	require.NoError(t, e.Prepare(r, api.EvRead, noop, nil))
	require.NoError(t, e.SetTimeout(10*time.Millisecond))
	assert.Equal(t, 10*time.Millisecond, e.Timeout())
	_, err = e.Enable()
	require.NoError(t, err)
	assert.True(t, e.Pending(api.EvTimeout))

	_, err = b.Loop(api.LoopOnce)
	require.NoError(t, err)
	assert.Equal(t, api.EvTimeout, e.Fired())
	assert.Equal(t, event.StateDisabled, e.State())
}

func TestEventPriorityBounds(t *testing.T) {
	b := newBase(t, 4)
	e, err := event.NewEvent(b, "")
	require.NoError(t, err)
	assert.ErrorIs(t, e.SetPriority(4), event.ErrConfiguration)
	assert.ErrorIs(t, e.SetPriority(-1), event.ErrConfiguration)
	require.NoError(t, e.SetPriority(3))
	assert.Equal(t, 3, e.Priority())
}

func TestPriorityOrderAcrossWatchers(t *testing.T) {
	b := newBase(t, 3)
	var order []string
	record := func(w event.Watcher) { order = append(order, w.Name()) }

	for _, tc := range []struct {
		name string
		pri  int
	}{{"low", 2}, {"mid", 1}, {"high", 0}} {
		tm, err := event.NewTimer(b, tc.name)
		require.NoError(t, err)
		require.NoError(t, tm.Prepare(record, nil, false))
		require.NoError(t, tm.SetPriority(tc.pri))
		require.NoError(t, tm.SetTimeout(0))
		_, err = tm.Enable()
		require.NoError(t, err)
	}

	_, err := b.Loop(api.LoopNonBlock)
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "mid", "low"}, order)
}
