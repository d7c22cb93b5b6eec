package event_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/momentics/hioload-event/api"
	"github.com/momentics/hioload-event/event"
	"github.com/momentics/hioload-event/internal/logging"
	"github.com/momentics/hioload-event/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newMockBase(t *testing.T, ctrl *gomock.Controller, opts ...event.Option) (*event.Base, *mocks.MockReactor) {
	t.Helper()
	r := mocks.NewMockReactor(ctrl)
	r.EXPECT().PriorityInit(4).Return(nil)
	opts = append([]event.Option{
		event.WithLogger(logging.Discard()),
		event.WithReactor(func() (api.Reactor, error) { return r, nil }),
	}, opts...)
	b, err := event.NewBase(4, opts...)
	require.NoError(t, err)
	return b, r
}

// mockTimer returns a prepared timer with a one second timeout.
func mockTimer(t *testing.T, ctrl *gomock.Controller, b *event.Base, r *mocks.MockReactor, name string) (*event.Timer, *mocks.MockEventHandle) {
	t.Helper()
	h := mocks.NewMockEventHandle(ctrl)
	r.EXPECT().NewEvent().Return(h, nil)
	h.EXPECT().Set(-1, api.EvTimeout, gomock.Any()).Return(nil)
	tm, err := event.NewTimer(b, name)
	require.NoError(t, err)
	require.NoError(t, tm.Prepare(noop, nil, true))
	require.NoError(t, tm.SetTimeout(time.Second))
	return tm, h
}

func TestPriorityInitFailureReleasesReactor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := mocks.NewMockReactor(ctrl)
	r.EXPECT().PriorityInit(7).Return(api.ErrEventActive)
	r.EXPECT().Free().Return(nil)

	_, err := event.NewBase(7,
		event.WithLogger(logging.Discard()),
		event.WithReactor(func() (api.Reactor, error) { return r, nil }))
	assert.ErrorIs(t, err, event.ErrConfiguration)
	assert.ErrorIs(t, err, api.ErrEventActive)
}

func TestHandleAllocationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	b, r := newMockBase(t, ctrl)

	r.EXPECT().NewEvent().Return(nil, errBoom)
	_, err := event.NewEvent(b, "e")
	assert.ErrorIs(t, err, event.ErrResourceCreation)
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, b.Len())

	r.EXPECT().Free().Return(nil)
	require.NoError(t, b.Free())
}

func TestEnableFailureKeepsPriorState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	b, r := newMockBase(t, ctrl)

	tm, h := mockTimer(t, ctrl, b, r, "t")
	for _, tc := range []struct {
		cause error
		kind  error
	}{
		{api.ErrHandleFreed, event.ErrInvalidState},
		{api.ErrInvalidArgument, event.ErrInvalidArgument},
		{api.ErrBufferFull, event.ErrIO},
		{errBoom, event.ErrDispatch},
	} {
		h.EXPECT().Add(time.Second).Return(tc.cause)
		ok, err := tm.Enable()
		assert.False(t, ok)
		assert.ErrorIs(t, err, tc.kind)
		assert.ErrorIs(t, err, tc.cause)
		assert.Equal(t, event.StatePrepared, tm.State())
		assert.True(t, b.Exists("t"))
	}

	// A clone is registered by Enable; a failed arm leaves it unregistered.
	ch := mocks.NewMockEventHandle(ctrl)
	r.EXPECT().NewEvent().Return(ch, nil)
	ch.EXPECT().Set(-1, api.EvTimeout, gomock.Any()).Return(nil)
	c, err := tm.Clone()
	require.NoError(t, err)
	ch.EXPECT().Add(time.Second).Return(errBoom)
	_, err = c.Enable()
	assert.ErrorIs(t, err, event.ErrDispatch)
	assert.Equal(t, event.StateDisabled, c.State())
	assert.False(t, b.Exists(c.Name()))

	ch.EXPECT().Free()
	require.NoError(t, c.Free())
	h.EXPECT().Free()
	r.EXPECT().Free().Return(nil)
	require.NoError(t, b.Free())
}

func TestWatcherFreeFailureKeepsWatcher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	b, r := newMockBase(t, ctrl)

	tm, h := mockTimer(t, ctrl, b, r, "t")
	h.EXPECT().Add(time.Second).Return(nil)
	_, err := tm.Enable()
	require.NoError(t, err)

	h.EXPECT().Del().Return(errBoom)
	err = tm.Free()
	assert.ErrorIs(t, err, event.ErrDispatch)
	assert.Equal(t, event.StateEnabled, tm.State())
	assert.True(t, b.Exists("t"))

	h.EXPECT().Del().Return(nil)
	h.EXPECT().Free()
	r.EXPECT().Free().Return(nil)
	require.NoError(t, b.Free())
	assert.Equal(t, event.StateFreed, tm.State())
}

func TestBaseFreeContinuesPastFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	b, r := newMockBase(t, ctrl)

	a, ha := mockTimer(t, ctrl, b, r, "a")
	z, hz := mockTimer(t, ctrl, b, r, "z")
	ha.EXPECT().Add(time.Second).Return(nil)
	hz.EXPECT().Add(time.Second).Return(nil)
	_, err := a.Enable()
	require.NoError(t, err)
	_, err = z.Enable()
	require.NoError(t, err)

	gomock.InOrder(
		ha.EXPECT().Del().Return(errBoom),
		ha.EXPECT().Free(),
		hz.EXPECT().Del().Return(nil),
		hz.EXPECT().Free(),
		r.EXPECT().Free().Return(api.ErrReactorClosed),
	)

	err = b.Free()
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, err, api.ErrReactorClosed)
	assert.ErrorIs(t, err, event.ErrDispatch)
	assert.Equal(t, event.StateFreed, a.State())
	assert.Equal(t, event.StateFreed, z.State())
	assert.Nil(t, b.Reactor())

	require.NoError(t, b.Free())
}

func TestFiredWhileNotEnabledIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var logs bytes.Buffer
	sink := &errorSink{}
	b, r := newMockBase(t, ctrl, sink.option(), event.WithLogger(logging.New(&logs, "json", slog.LevelDebug)))

	var fire api.EventCallback
	h := mocks.NewMockEventHandle(ctrl)
	r.EXPECT().NewEvent().Return(h, nil)
	h.EXPECT().Set(-1, api.EvTimeout, gomock.Any()).DoAndReturn(
		func(_ int, _ api.Flags, cb api.EventCallback) error {
			fire = cb
			return nil
		})
	tm, err := event.NewTimer(b, "t")
	require.NoError(t, err)
	require.NoError(t, tm.Prepare(noop, nil, false))
	require.NotNil(t, fire)

	fire(-1, api.EvTimeout)
	require.Len(t, sink.errs, 1)
	assert.ErrorIs(t, sink.errs[0], event.ErrInvalidState)
	assert.Zero(t, tm.Fires())
	assert.EqualValues(t, 1, b.Stats().Errors)
	assert.EqualValues(t, 1, b.Metrics().Counter("dispatch.errors"))
	assert.Contains(t, logs.String(), `"msg":"dispatch failure"`)
	assert.Contains(t, logs.String(), `"watcher":"t"`)

	h.EXPECT().Free()
	r.EXPECT().Free().Return(nil)
	require.NoError(t, b.Free())
}

func TestReactorLoopFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	b, r := newMockBase(t, ctrl)

	r.EXPECT().Loop(api.LoopOnce).Return(-1, errBoom)
	_, err := b.Loop(api.LoopOnce)
	assert.ErrorIs(t, err, event.ErrDispatch)
	assert.ErrorIs(t, err, errBoom)

	r.EXPECT().Loop(api.LoopDefault).Return(1, nil)
	status, err := b.Loop(api.LoopDefault)
	require.NoError(t, err)
	assert.Equal(t, event.LoopNoEvents, status)

	r.EXPECT().LoopBreak().Return(errBoom)
	assert.ErrorIs(t, b.LoopBreak(), event.ErrDispatch)
	r.EXPECT().LoopExit(time.Second).Return(errBoom)
	assert.ErrorIs(t, b.LoopExit(time.Second), event.ErrDispatch)

	r.EXPECT().Free().Return(nil)
	require.NoError(t, b.Free())
}

func TestStreamPriorityRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	b, r := newMockBase(t, ctrl)

	bh := mocks.NewMockBufferHandle(ctrl)
	r.EXPECT().NewBufferEvent(-1, gomock.Any()).Return(bh, nil)
	bh.EXPECT().SetCallbacks(gomock.Any())
	bh.EXPECT().SetTimeouts(gomock.Any(), gomock.Any())
	bh.EXPECT().SetWatermark(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)
	bh.EXPECT().PrioritySet(3).Return(api.ErrInvalidArgument)
	bh.EXPECT().Free()

	_, err := event.NewBufferedStream(b, "s")
	assert.ErrorIs(t, err, event.ErrConfiguration)
	assert.False(t, b.Exists("s"))

	r.EXPECT().Free().Return(nil)
	require.NoError(t, b.Free())
}

func TestStreamSetPriorityFailureKinds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	b, r := newMockBase(t, ctrl)

	bh := mocks.NewMockBufferHandle(ctrl)
	r.EXPECT().NewBufferEvent(-1, gomock.Any()).Return(bh, nil)
	bh.EXPECT().SetCallbacks(gomock.Any())
	bh.EXPECT().SetTimeouts(gomock.Any(), gomock.Any())
	bh.EXPECT().SetWatermark(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)
	bh.EXPECT().PrioritySet(3).Return(nil)

	s, err := event.NewBufferedStream(b, "s")
	require.NoError(t, err)

	bh.EXPECT().PrioritySet(1).Return(api.ErrEventActive)
	err = s.SetPriority(1)
	assert.ErrorIs(t, err, event.ErrInvalidState)
	assert.ErrorIs(t, err, api.ErrEventActive)
	assert.Equal(t, 3, s.Priority())

	bh.EXPECT().PrioritySet(2).Return(errBoom)
	err = s.SetPriority(2)
	assert.ErrorIs(t, err, event.ErrDispatch)
	assert.Equal(t, 3, s.Priority())

	bh.EXPECT().Free()
	require.NoError(t, s.Free())
	r.EXPECT().Free().Return(nil)
	require.NoError(t, b.Free())
}
