// File: event/base.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Dispatcher: owns the watchers registered on it, tracks which of them are
// administratively disabled, drives the reactor loop and tears everything
// down in one direction.

package event

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/momentics/hioload-event/api"
	"github.com/momentics/hioload-event/control"
	"github.com/momentics/hioload-event/internal/logging"
	"github.com/momentics/hioload-event/reactor"
)

// DefaultPriority is the priority ceiling used by NewBaseFromConfig when the
// configuration does not set one.
const DefaultPriority = control.DefaultPriority

// LoopStatus tells how Loop ended.
type LoopStatus int

const (
	// LoopCompleted: the loop ran and stopped on its own, on LoopBreak, on
	// LoopExit, or after the pass requested by the flags.
	LoopCompleted LoopStatus = iota
	// LoopNoEvents: nothing was armed.
	LoopNoEvents
)

func (s LoopStatus) String() string {
	if s == LoopNoEvents {
		return "no events"
	}
	return "completed"
}

// Option customizes a Base.
type Option func(*Base)

// WithConfig supplies reactor sizing and stream defaults.
func WithConfig(cfg *control.Config) Option {
	return func(b *Base) {
		if cfg != nil {
			b.cfg = cfg.Clone()
		}
	}
}

// WithLogger sets the logger. The dispatcher adds its base_id attribute.
func WithLogger(l *slog.Logger) Option {
	return func(b *Base) { b.log = l }
}

// WithReactor replaces the reactor primitive factory.
func WithReactor(factory func() (api.Reactor, error)) Option {
	return func(b *Base) { b.factory = factory }
}

// WithMetrics shares a metrics registry with the dispatcher.
func WithMetrics(m *control.MetricsRegistry) Option {
	return func(b *Base) { b.metrics = m }
}

// WithErrorHandler receives failures raised on the dispatch path, where no
// caller is there to return them to.
func WithErrorHandler(fn func(error)) Option {
	return func(b *Base) { b.onError = fn }
}

// Base is the dispatcher. It is the only strong owner of the watchers
// registered on it. All methods must be called from the goroutine that
// drives Loop.
type Base struct {
	id       uuid.UUID
	reactor  api.Reactor
	priority int

	events     map[string]Watcher
	disabled   map[string]struct{}
	tombstones *lru.Cache[string, struct{}]
	seq        uint64
	freed      bool

	loops   uint64
	invoked uint64
	fails   uint64

	cfg     *control.Config
	log     *slog.Logger
	metrics *control.MetricsRegistry
	probes  *control.DebugProbes
	onError func(error)
	factory func() (api.Reactor, error)
}

// NewBase creates a dispatcher whose watchers may use priorities
// [0, priority).
func NewBase(priority int, opts ...Option) (*Base, error) {
	b := &Base{
		id:       uuid.New(),
		events:   make(map[string]Watcher),
		disabled: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.cfg == nil {
		b.cfg = control.DefaultConfig()
	}
	if b.log == nil {
		b.log = logging.WithComponent("event")
	}
	b.log = b.log.With(slog.String("base_id", b.id.String()))
	if b.metrics == nil {
		b.metrics = control.NewMetricsRegistry()
	}
	if b.factory == nil {
		b.factory = b.newReactor
	}

	cache, err := lru.New[string, struct{}](b.cfg.Dispatcher.Tombstones)
	if err != nil {
		return nil, newError(KindConfiguration, "tombstone cache").WithBase(b).Wrap(err)
	}
	b.tombstones = cache

	r, err := b.factory()
	if err != nil {
		return nil, newError(KindResourceCreation, "allocate reactor").WithBase(b).Wrap(err)
	}
	if err := r.PriorityInit(priority); err != nil {
		_ = r.Free()
		return nil, newError(KindConfiguration, "priority ceiling %d", priority).WithBase(b).Wrap(err)
	}
	b.reactor = r
	b.priority = priority

	b.probes = control.NewDebugProbes()
	b.registerProbes()
	b.metrics.Inc("dispatchers.created")
	b.log.Debug("dispatcher created", "priority", priority)
	return b, nil
}

// NewBaseFromConfig validates cfg and creates a dispatcher from it.
func NewBaseFromConfig(cfg *control.Config, opts ...Option) (*Base, error) {
	if cfg == nil {
		cfg = control.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, newError(KindConfiguration, "invalid configuration").Wrap(err)
	}
	return NewBase(cfg.Dispatcher.Priority, append([]Option{WithConfig(cfg)}, opts...)...)
}

func (b *Base) newReactor() (api.Reactor, error) {
	r, err := reactor.New(
		reactor.WithMaxEvents(b.cfg.Reactor.MaxEvents),
		reactor.WithChunkSize(b.cfg.Reactor.ChunkSize),
		reactor.WithMaxBuffer(b.cfg.Reactor.MaxBuffer),
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (b *Base) registerProbes() {
	b.probes.RegisterProbe("dispatcher.id", func() any { return b.id.String() })
	b.probes.RegisterProbe("dispatcher.priority", func() any { return b.priority })
	b.probes.RegisterProbe("dispatcher.freed", func() any { return b.freed })
	b.probes.RegisterProbe("dispatcher.watchers", func() any {
		states := make(map[string]string, len(b.events))
		for name, w := range b.events {
			states[name] = w.State().String()
		}
		return states
	})
	b.probes.RegisterProbe("dispatcher.disabled", func() any { return b.DisabledEvents() })
	control.RegisterPlatformProbes(b.probes)
}

// ID returns the dispatcher identity used in logs and dumps.
func (b *Base) ID() uuid.UUID { return b.id }

// Reactor returns the reactor primitive, or nil once the dispatcher is freed.
func (b *Base) Reactor() api.Reactor { return b.reactor }

// Priority returns the priority ceiling.
func (b *Base) Priority() int { return b.priority }

// Config returns the configuration the dispatcher was built with.
func (b *Base) Config() *control.Config { return b.cfg.Clone() }

// Metrics returns the metrics registry.
func (b *Base) Metrics() *control.MetricsRegistry { return b.metrics }

// SetPriority changes the priority ceiling. The reactor refuses while
// callbacks are queued or the loop is running.
func (b *Base) SetPriority(n int) error {
	if b.freed {
		return b.released("set priority")
	}
	if err := b.reactor.PriorityInit(n); err != nil {
		return newError(KindConfiguration, "priority ceiling %d", n).WithBase(b).Wrap(err)
	}
	b.priority = n
	return nil
}

// Exists reports whether name is registered.
func (b *Base) Exists(name string) bool {
	_, ok := b.events[name]
	return ok
}

// Lookup returns the watcher registered under name.
func (b *Base) Lookup(name string) (Watcher, bool) {
	w, ok := b.events[name]
	return w, ok
}

// Len returns the number of registered watchers.
func (b *Base) Len() int { return len(b.events) }

// Names returns the registered names in order.
func (b *Base) Names() []string {
	names := make([]string, 0, len(b.events))
	for name := range b.events {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RegisterEvent inserts w under its name. It reports false, without
// failing, when the name is taken, w belongs to another dispatcher or
// either side is freed.
func (b *Base) RegisterEvent(w Watcher) bool {
	if b.freed || w == nil || !w.Check() || w.Base() != b {
		return false
	}
	name := w.Name()
	if _, ok := b.events[name]; ok {
		b.log.Debug("registration conflict", "watcher", name)
		return false
	}
	b.events[name] = w
	b.tombstones.Remove(name)
	b.metrics.Inc("watchers.registered")
	b.log.Debug("watcher registered", "watcher", name)
	return true
}

// RemoveEvent deregisters name and frees the watcher if it is still live.
// It reports false when name is not registered.
func (b *Base) RemoveEvent(name string) bool {
	w, ok := b.events[name]
	if !ok {
		b.log.Debug("remove: watcher not registered", "watcher", name)
		return false
	}
	b.unregister(name)
	b.tombstones.Add(name, struct{}{})
	b.metrics.Inc("watchers.removed")
	b.log.Debug("watcher removed", "watcher", name)
	if w.Check() {
		if err := w.free(true); err != nil {
			b.report(err)
		}
	}
	return true
}

// RemoveWatcher is RemoveEvent for w, provided w is the watcher registered
// under its name.
func (b *Base) RemoveWatcher(w Watcher) bool {
	if w == nil {
		return false
	}
	if cur, ok := b.events[w.Name()]; !ok || cur != w {
		return false
	}
	return b.RemoveEvent(w.Name())
}

func (b *Base) unregister(name string) {
	delete(b.events, name)
	delete(b.disabled, name)
}

// EnableEvent takes name out of the disabled set. Watchers call it from
// their own Enable.
func (b *Base) EnableEvent(name string) bool {
	if _, ok := b.events[name]; !ok {
		return false
	}
	delete(b.disabled, name)
	return true
}

// DisableEvent puts name in the disabled set. It reports false when name
// is not registered.
func (b *Base) DisableEvent(name string) bool {
	if _, ok := b.events[name]; !ok {
		b.log.Debug("disable: watcher not registered", "watcher", name)
		return false
	}
	b.disabled[name] = struct{}{}
	return true
}

// IsEventDisabled reports whether name is in the disabled set.
func (b *Base) IsEventDisabled(name string) bool {
	_, ok := b.disabled[name]
	return ok
}

// DisabledEvents returns the disabled set in order.
func (b *Base) DisabledEvents() []string {
	names := make([]string, 0, len(b.disabled))
	for name := range b.disabled {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// WasFreed reports whether name belonged to a recently removed watcher.
func (b *Base) WasFreed(name string) bool {
	return b.tombstones.Contains(name)
}

// Loop runs the reactor. See api.LoopFlags.
func (b *Base) Loop(flags api.LoopFlags) (LoopStatus, error) {
	if b.freed {
		return LoopCompleted, b.released("loop")
	}
	b.loops++
	b.metrics.Inc("loop.runs")
	n, err := b.reactor.Loop(flags)
	if err != nil {
		return LoopCompleted, newError(KindDispatch, "loop").WithBase(b).Wrap(err)
	}
	if n == 1 {
		return LoopNoEvents, nil
	}
	return LoopCompleted, nil
}

// LoopBreak stops the running loop after the current callback. Callbacks
// not yet run in this pass are kept for the next Loop.
func (b *Base) LoopBreak() error {
	if b.freed {
		return b.released("loop break")
	}
	if err := b.reactor.LoopBreak(); err != nil {
		return newError(KindDispatch, "loop break").WithBase(b).Wrap(err)
	}
	return nil
}

// LoopExit stops the loop after timeout. A non-positive timeout lets the
// current pass finish and exits before the next wait.
func (b *Base) LoopExit(timeout time.Duration) error {
	if b.freed {
		return b.released("loop exit")
	}
	if err := b.reactor.LoopExit(timeout); err != nil {
		return newError(KindDispatch, "loop exit").WithBase(b).Wrap(err)
	}
	return nil
}

// Free tears down every registered watcher, then releases the reactor.
// Watcher failures do not stop the teardown; they are joined into the
// returned error. Calling Free again is a no-op.
func (b *Base) Free() error {
	if b.freed {
		return nil
	}
	b.freed = true

	names := b.Names()
	var errs []error
	for _, name := range names {
		w, ok := b.events[name]
		if !ok {
			continue
		}
		b.unregister(name)
		b.tombstones.Add(name, struct{}{})
		if w.Check() {
			if err := w.free(true); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if err := b.reactor.Free(); err != nil {
		errs = append(errs, newError(KindDispatch, "release reactor").WithBase(b).Wrap(err))
	}
	b.reactor = nil
	b.metrics.Inc("dispatchers.freed")
	b.log.Debug("dispatcher freed", "watchers", len(names))
	return errors.Join(errs...)
}

// Freed reports whether Free was called.
func (b *Base) Freed() bool { return b.freed }

// Stats is a point-in-time view of a dispatcher.
type Stats struct {
	ID       string
	Priority int
	Watchers int
	Enabled  int
	Disabled int
	Loops    uint64
	Invoked  uint64
	Errors   uint64
	Freed    bool
}

// Stats returns the current counters.
func (b *Base) Stats() Stats {
	st := Stats{
		ID:       b.id.String(),
		Priority: b.priority,
		Watchers: len(b.events),
		Disabled: len(b.disabled),
		Loops:    b.loops,
		Invoked:  b.invoked,
		Errors:   b.fails,
		Freed:    b.freed,
	}
	for _, w := range b.events {
		if w.State() == StateEnabled {
			st.Enabled++
		}
	}
	return st
}

// DumpState runs the dispatcher's debug probes.
func (b *Base) DumpState() map[string]any {
	return b.probes.DumpState()
}

// generateName returns "<kind>-<n>" for the first n not used by a live or
// recently freed watcher.
func (b *Base) generateName(kind string) string {
	for {
		b.seq++
		name := fmt.Sprintf("%s-%d", kind, b.seq)
		if _, ok := b.events[name]; ok {
			continue
		}
		if b.tombstones.Contains(name) {
			continue
		}
		return name
	}
}

func (b *Base) released(op string) error {
	return newError(KindDispatch, "%s", op).WithBase(b).
		Wrap(newError(KindInvalidState, "dispatcher freed").WithBase(b))
}

// report logs a failure raised on the dispatch path and hands it to the
// error handler.
func (b *Base) report(err error) {
	b.fails++
	b.metrics.Inc("dispatch.errors")
	attrs := []any{"error", err}
	var ee *Error
	if errors.As(err, &ee) && ee.Watcher != nil {
		attrs = append(attrs, "watcher", ee.Watcher.Name())
	}
	b.log.Error("dispatch failure", attrs...)
	if b.onError != nil {
		b.onError(err)
	}
}
