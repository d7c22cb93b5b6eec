// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral dispatch loop: poll, expire timers, drain signals, then run
// the active callbacks in priority order.

package reactor

import (
	"errors"
	"fmt"
	"time"

	"github.com/eapache/queue"
	"github.com/momentics/hioload-event/api"
	"github.com/momentics/hioload-event/pool"
)

const (
	// DefaultMaxEvents bounds the readiness events fetched per poll.
	DefaultMaxEvents = 128
	// MaxPriorities is the largest priority ceiling PriorityInit accepts.
	MaxPriorities = 256
	// DefaultMaxBuffer caps buffered stream output.
	DefaultMaxBuffer = 64 << 20
)

// Option customizes a Base.
type Option func(*Base)

// WithMaxEvents sets how many readiness events one poll may return.
func WithMaxEvents(n int) Option {
	return func(b *Base) {
		if n > 0 {
			b.maxEvents = n
		}
	}
}

// WithChunkSize sets the read chunk of buffered streams.
func WithChunkSize(n int) Option {
	return func(b *Base) {
		b.chunkSize = n
	}
}

// WithMaxBuffer caps the pending output of each buffered stream. Zero
// disables the cap.
func WithMaxBuffer(n int) Option {
	return func(b *Base) {
		if n >= 0 {
			b.maxBuffer = n
		}
	}
}

// activeEntry is one queued activation. gen guards against entries left
// behind by an event deleted after it was activated.
type activeEntry struct {
	ev  *Event
	gen uint64
}

type ioEntry struct {
	events []*Event
	mask   api.Flags
}

// Base is the dispatcher handle. It implements api.Reactor.
type Base struct {
	poller poller
	wake   *wakeup
	sigs   *signalSet

	active  []*queue.Queue // one FIFO of activeEntry per priority
	nactive int
	timers  timerHeap
	io      map[int]*ioEntry
	count   int // armed, non-internal events

	running  bool
	gotBreak bool
	gotTerm  bool
	closed   bool
	exitEv   *Event

	maxEvents int
	chunkSize int
	maxBuffer int
	chunks    *pool.BytePool
}

var _ api.Reactor = (*Base)(nil)

// New allocates a reactor with a single priority level.
func New(opts ...Option) (*Base, error) {
	b := &Base{
		io:        make(map[int]*ioEntry),
		maxEvents: DefaultMaxEvents,
		maxBuffer: DefaultMaxBuffer,
	}
	for _, opt := range opts {
		opt(b)
	}

	p, err := newPoller(b.maxEvents)
	if err != nil {
		return nil, fmt.Errorf("reactor: create poller: %w", err)
	}
	w, err := newWakeup()
	if err != nil {
		_ = p.close()
		return nil, fmt.Errorf("reactor: create wakeup: %w", err)
	}
	if err := p.add(w.fd(), api.EvRead); err != nil {
		_ = w.close()
		_ = p.close()
		return nil, fmt.Errorf("reactor: watch wakeup: %w", err)
	}

	b.poller = p
	b.wake = w
	b.sigs = newSignalSet(w)
	b.chunks = pool.NewBytePool(b.chunkSize)
	b.initQueues(1)
	return b, nil
}

func (b *Base) initQueues(n int) {
	b.active = make([]*queue.Queue, n)
	for i := range b.active {
		b.active[i] = queue.New()
	}
}

// PriorityInit sets the number of priority levels. It is rejected while
// callbacks are queued or the loop is running.
func (b *Base) PriorityInit(n int) error {
	if b.closed {
		return api.ErrReactorClosed
	}
	if n < 1 || n > MaxPriorities {
		return fmt.Errorf("reactor: priority ceiling %d outside [1,%d]: %w", n, MaxPriorities, api.ErrInvalidArgument)
	}
	if b.nactive > 0 || b.running {
		return api.ErrEventActive
	}
	b.initQueues(n)
	return nil
}

// Priorities returns the number of priority levels.
func (b *Base) Priorities() int { return len(b.active) }

// Closed reports whether Free was called.
func (b *Base) Closed() bool { return b.closed }

// Loop drives the reactor. See api.Reactor.
func (b *Base) Loop(flags api.LoopFlags) (int, error) {
	if b.closed {
		return -1, api.ErrReactorClosed
	}
	if b.running {
		return -1, api.ErrReentrantLoop
	}
	b.running = true
	defer func() {
		b.running = false
		b.gotBreak = false
		b.gotTerm = false
	}()

	for {
		if b.gotTerm || b.gotBreak {
			return 0, nil
		}
		if b.count == 0 && b.nactive == 0 {
			return 1, nil
		}

		timeout := time.Duration(-1)
		if flags&api.LoopNonBlock != 0 || b.nactive > 0 {
			timeout = 0
		} else if d, ok := b.nextTimeout(); ok {
			timeout = d
		}

		if err := b.dispatch(timeout); err != nil {
			return -1, err
		}
		b.expireTimers(time.Now())
		b.sigs.drain(b.activate)

		processed := 0
		if b.nactive > 0 {
			processed = b.processActive()
		}
		if b.closed {
			return 0, nil
		}
		if flags&api.LoopOnce != 0 && b.nactive == 0 && processed > 0 {
			return 0, nil
		}
		if flags&api.LoopNonBlock != 0 {
			return 0, nil
		}
	}
}

// LoopBreak aborts the running loop once the current callback returns.
// Activations not yet run stay queued for the next Loop.
func (b *Base) LoopBreak() error {
	if b.closed {
		return api.ErrReactorClosed
	}
	b.gotBreak = true
	return nil
}

// LoopExit stops the loop once timeout elapses. A non-positive timeout lets
// the pass in progress finish and exits before the next poll.
func (b *Base) LoopExit(timeout time.Duration) error {
	if b.closed {
		return api.ErrReactorClosed
	}
	if timeout <= 0 {
		b.gotTerm = true
		return nil
	}
	if b.exitEv == nil {
		ev := b.newEvent()
		ev.internal = true
		if err := ev.Set(-1, api.EvTimeout, func(int, api.Flags) { b.gotTerm = true }); err != nil {
			return err
		}
		b.exitEv = ev
	}
	return b.exitEv.Add(timeout)
}

// Free releases the poller, the wakeup descriptor and signal forwarders.
// Handles allocated from b fail with api.ErrReactorClosed afterwards.
func (b *Base) Free() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.sigs.stop()
	err := errors.Join(b.poller.close(), b.wake.close())
	b.io = nil
	b.timers = nil
	b.nactive = 0
	b.count = 0
	for _, q := range b.active {
		for q.Length() > 0 {
			q.Remove()
		}
	}
	return err
}

func (b *Base) dispatch(timeout time.Duration) error {
	err := b.poller.wait(timeout, func(fd int, ready api.Flags) {
		if fd == b.wake.fd() {
			b.wake.drain()
			return
		}
		b.ioReady(fd, ready)
	})
	if err != nil {
		return fmt.Errorf("reactor: poll: %w", err)
	}
	return nil
}

func (b *Base) ioReady(fd int, ready api.Flags) {
	ent := b.io[fd]
	if ent == nil {
		return
	}
	for _, ev := range ent.events {
		if res := ready & ev.what & (api.EvRead | api.EvWrite); res != 0 {
			b.activate(ev, res)
		}
	}
}

func (b *Base) activate(ev *Event, res api.Flags) {
	if ev.active {
		ev.res |= res
		return
	}
	ev.active = true
	ev.res = res
	ev.gen++
	pri := ev.pri
	if pri >= len(b.active) {
		pri = len(b.active) - 1
	}
	b.active[pri].Add(activeEntry{ev: ev, gen: ev.gen})
	b.nactive++
}

// processActive runs queued callbacks, lowest priority number first. Only
// the entries queued when a priority level is reached are run in this pass.
func (b *Base) processActive() int {
	processed := 0
	for pri := 0; pri < len(b.active); pri++ {
		q := b.active[pri]
		for n := q.Length(); n > 0; n-- {
			entry := q.Remove().(activeEntry)
			ev := entry.ev
			if !ev.active || ev.gen != entry.gen {
				continue
			}
			ev.active = false
			b.nactive--
			res := ev.res
			ev.res = 0

			if ev.what&api.EvPersist == 0 {
				_ = ev.Del()
			} else if ev.inserted && ev.timeout >= 0 {
				b.schedule(ev, time.Now().Add(ev.timeout))
			}

			processed++
			ev.cb(ev.fd, res)
			if b.gotBreak || b.closed {
				return processed
			}
		}
	}
	return processed
}

func (b *Base) ioAdd(ev *Event) error {
	ent := b.io[ev.fd]
	if ent == nil {
		ent = &ioEntry{}
		b.io[ev.fd] = ent
	}
	old := ent.mask
	ent.events = append(ent.events, ev)
	ent.mask |= ev.what & (api.EvRead | api.EvWrite)

	var err error
	switch {
	case old == 0:
		err = b.poller.add(ev.fd, ent.mask)
	case ent.mask != old:
		err = b.poller.mod(ev.fd, ent.mask)
	}
	if err != nil {
		ent.events = ent.events[:len(ent.events)-1]
		ent.mask = old
		if len(ent.events) == 0 {
			delete(b.io, ev.fd)
		}
		return fmt.Errorf("reactor: watch fd %d: %w", ev.fd, err)
	}
	return nil
}

func (b *Base) ioDel(ev *Event) error {
	ent := b.io[ev.fd]
	if ent == nil {
		return nil
	}
	old := ent.mask
	ent.mask = 0
	kept := ent.events[:0]
	for _, e := range ent.events {
		if e == ev {
			continue
		}
		kept = append(kept, e)
		ent.mask |= e.what & (api.EvRead | api.EvWrite)
	}
	ent.events = kept

	if len(kept) == 0 {
		delete(b.io, ev.fd)
		return b.poller.del(ev.fd)
	}
	if ent.mask != old {
		return b.poller.mod(ev.fd, ent.mask)
	}
	return nil
}
