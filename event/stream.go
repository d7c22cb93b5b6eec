// File: event/stream.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Buffered stream watcher: read/write buffering over a descriptor with
// watermarks, per-direction timeouts and independent direction masks.

package event

import (
	"time"

	"github.com/momentics/hioload-event/api"
)

// StreamCallback is a read or write notification.
type StreamCallback func(s *BufferedStream)

// StreamErrorCallback reports EOF, timeouts and descriptor errors.
type StreamErrorCallback func(s *BufferedStream, what api.BufferFlags)

// BufferedStream watches a stream descriptor through reactor-managed
// input and output buffers.
type BufferedStream struct {
	watcher
	handle api.BufferHandle
	fd     int

	onRead  StreamCallback
	onWrite StreamCallback
	onError StreamErrorCallback

	rtimeout time.Duration
	wtimeout time.Duration
	rlow     int
	rhigh    int
	wlow     int
	lastErr  api.BufferFlags
}

var _ Watcher = (*BufferedStream)(nil)

// NewBufferedStream allocates a stream watcher on b with the dispatcher's
// stream defaults. The descriptor is bound by Prepare.
func NewBufferedStream(b *Base, name string) (*BufferedStream, error) {
	s := &BufferedStream{fd: -1}
	if err := s.init(s, b, kindStream, name); err != nil {
		return nil, err
	}
	h, err := b.reactor.NewBufferEvent(-1, api.BufferCallbacks{})
	if err != nil {
		return nil, newError(KindResourceCreation, "allocate stream handle").WithBase(b).Wrap(err)
	}
	s.handle = h
	h.SetCallbacks(api.BufferCallbacks{
		OnRead:  s.readReady,
		OnWrite: s.writeReady,
		OnError: s.errorReady,
	})

	def := b.cfg.Stream
	s.rtimeout, s.wtimeout = def.ReadTimeout, def.WriteTimeout
	h.SetTimeouts(s.rtimeout, s.wtimeout)
	s.rlow, s.rhigh = def.LowWatermark, def.HighWatermark
	h.SetWatermark(api.EvRead, s.rlow, s.rhigh)
	h.SetWatermark(api.EvWrite, 0, 0)

	pri := min(def.Priority, b.priority-1)
	if err := h.PrioritySet(pri); err != nil {
		h.Free()
		return nil, newError(KindConfiguration, "stream priority %d", pri).WithBase(b).Wrap(err)
	}
	s.priority = pri
	return s, nil
}

// Prepare binds the descriptor and callbacks and registers the stream.
// onError is required; onRead and onWrite may be nil.
func (s *BufferedStream) Prepare(fd int, onRead, onWrite StreamCallback, onError StreamErrorCallback, args Args) error {
	if err := s.live(); err != nil {
		return err
	}
	if onError == nil {
		return s.errorf(KindInvalidCallback, "nil error callback")
	}
	if fd < 0 {
		return s.errorf(KindInvalidArgument, "invalid descriptor %d", fd)
	}
	b, err := s.dispatcher()
	if err != nil {
		return err
	}
	if err := s.checkName(b); err != nil {
		return err
	}
	if s.state == StateEnabled {
		if _, err := s.Disable(); err != nil {
			return err
		}
	}
	if err := s.handle.SetFD(fd); err != nil {
		return s.reactorError("bind", err)
	}
	if _, err := s.claim(b); err != nil {
		return err
	}
	s.fd = fd
	s.onRead, s.onWrite, s.onError = onRead, onWrite, onError
	s.args = args.clone()
	s.persist = true
	s.prepared(b)
	return nil
}

func validDirections(mask api.Flags) bool {
	return mask != 0 && mask&^api.EvReadWrite == 0
}

// EnableDirections starts watching the directions in mask. It reports false
// when every direction in mask was already enabled or the stream is not
// prepared yet.
func (s *BufferedStream) EnableDirections(mask api.Flags) (bool, error) {
	if err := s.live(); err != nil {
		return false, err
	}
	if !validDirections(mask) {
		return false, s.errorf(KindInvalidArgument, "direction mask %s", mask)
	}
	if s.state == StateEnabled && s.handle.Enabled()&mask == mask {
		return false, nil
	}
	if s.state == StateEnabled {
		if err := s.handle.Enable(mask); err != nil {
			return false, s.reactorError("enable", err)
		}
		return true, nil
	}
	return s.enable(func() error { return s.handle.Enable(mask) })
}

// DisableDirections stops watching the directions in mask. The stream turns
// Disabled once no direction is left.
func (s *BufferedStream) DisableDirections(mask api.Flags) (bool, error) {
	if err := s.live(); err != nil {
		return false, err
	}
	if !validDirections(mask) {
		return false, s.errorf(KindInvalidArgument, "direction mask %s", mask)
	}
	if s.state != StateEnabled {
		return false, nil
	}
	if s.handle.Enabled()&mask == 0 {
		return false, nil
	}
	if err := s.handle.Disable(mask); err != nil {
		return false, s.reactorError("disable", err)
	}
	if s.handle.Enabled() == 0 {
		s.markDisabled()
	}
	return true, nil
}

func (s *BufferedStream) Enable() (bool, error)  { return s.EnableDirections(api.EvReadWrite) }
func (s *BufferedStream) Disable() (bool, error) { return s.DisableDirections(api.EvReadWrite) }

// Directions returns the directions currently watched.
func (s *BufferedStream) Directions() api.Flags {
	if s.handle == nil {
		return 0
	}
	return s.handle.Enabled()
}

// Read drains up to n bytes of buffered input. It returns an empty slice
// when nothing is buffered.
func (s *BufferedStream) Read(n int) ([]byte, error) {
	if err := s.live(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, s.errorf(KindInvalidArgument, "read size %d", n)
	}
	out := s.handle.Read(n)
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

// Write queues p for output.
func (s *BufferedStream) Write(p []byte) error {
	if err := s.live(); err != nil {
		return err
	}
	if err := s.handle.Write(p); err != nil {
		return s.errorf(KindIO, "write %d bytes", len(p)).Wrap(err)
	}
	return nil
}

// SetStream moves the stream to another descriptor.
func (s *BufferedStream) SetStream(fd int) error {
	if err := s.live(); err != nil {
		return err
	}
	if fd < 0 {
		return s.errorf(KindInvalidArgument, "invalid descriptor %d", fd)
	}
	if err := s.handle.SetFD(fd); err != nil {
		return s.reactorError("set stream", err)
	}
	s.fd = fd
	return nil
}

// SetCallbacks replaces the callbacks and the argument bundle.
func (s *BufferedStream) SetCallbacks(onRead, onWrite StreamCallback, onError StreamErrorCallback, args Args) error {
	if err := s.live(); err != nil {
		return err
	}
	if onError == nil {
		return s.errorf(KindInvalidCallback, "nil error callback")
	}
	s.onRead, s.onWrite, s.onError = onRead, onWrite, onError
	s.args = args.clone()
	return nil
}

// SetTimeouts sets the read and write inactivity timeouts. Zero or negative
// disables a direction's timeout.
func (s *BufferedStream) SetTimeouts(read, write time.Duration) error {
	if err := s.live(); err != nil {
		return err
	}
	s.rtimeout, s.wtimeout = read, write
	s.handle.SetTimeouts(read, write)
	return nil
}

// SetWatermark sets the low and high watermarks of the directions in dir.
// The read callback runs once input reaches low and reading stalls at high;
// the write callback runs once output drains to low. A zero high is
// unlimited. high is ignored for the write direction.
func (s *BufferedStream) SetWatermark(dir api.Flags, low, high int) error {
	if err := s.live(); err != nil {
		return err
	}
	if !validDirections(dir) {
		return s.errorf(KindInvalidArgument, "direction mask %s", dir)
	}
	if low < 0 || high < 0 || (dir&api.EvRead != 0 && high > 0 && low > high) {
		return s.errorf(KindInvalidArgument, "watermarks low=%d high=%d", low, high)
	}
	if dir&api.EvRead != 0 {
		s.rlow, s.rhigh = low, high
	}
	if dir&api.EvWrite != 0 {
		s.wlow = low
	}
	s.handle.SetWatermark(dir, low, high)
	return nil
}

// SetPriority assigns the dispatch priority of both directions.
func (s *BufferedStream) SetPriority(level int) error {
	if err := s.live(); err != nil {
		return err
	}
	b, err := s.dispatcher()
	if err != nil {
		return err
	}
	if err := s.checkPriority(b, level); err != nil {
		return err
	}
	if err := s.handle.PrioritySet(level); err != nil {
		return s.reactorError("priority", err)
	}
	s.priority = level
	return nil
}

func (s *BufferedStream) FD() int       { return s.fd }
func (s *BufferedStream) Priority() int { return s.priority }

// LastError returns the flags of the last error notification.
func (s *BufferedStream) LastError() api.BufferFlags { return s.lastErr }

// Timeouts returns the read and write inactivity timeouts.
func (s *BufferedStream) Timeouts() (read, write time.Duration) {
	return s.rtimeout, s.wtimeout
}

func (s *BufferedStream) InputLen() int {
	if s.handle == nil {
		return 0
	}
	return s.handle.InputLen()
}

func (s *BufferedStream) OutputLen() int {
	if s.handle == nil {
		return 0
	}
	return s.handle.OutputLen()
}

// Invoke delivers the notifications the current buffer levels call for:
// the read callback when input has reached the low watermark, the write
// callback when output has drained to its low watermark.
func (s *BufferedStream) Invoke() error {
	if s.state != StateEnabled {
		return s.errorf(KindInvalidState, "invoke in state %s", s.state)
	}
	dirs := s.handle.Enabled()
	if dirs&api.EvRead != 0 && s.InputLen() >= s.rlow {
		s.readReady()
	}
	if s.state == StateEnabled && dirs&api.EvWrite != 0 && s.OutputLen() <= s.wlow {
		s.writeReady()
	}
	return nil
}

func (s *BufferedStream) readReady() {
	if s.state == StateEnabled && s.onRead != nil {
		s.account()
		s.onRead(s)
	}
}

func (s *BufferedStream) writeReady() {
	if s.state == StateEnabled && s.onWrite != nil {
		s.account()
		s.onWrite(s)
	}
}

func (s *BufferedStream) errorReady(what api.BufferFlags) {
	s.lastErr = what
	if s.state == StateEnabled && s.handle.Enabled() == 0 {
		s.markDisabled()
	}
	if s.onError != nil {
		s.account()
		s.onError(s, what)
	}
}

func (s *BufferedStream) account() {
	if b := s.base.Value(); b != nil {
		b.invoked++
	}
}

func (s *BufferedStream) Free() error { return s.free(false) }

func (s *BufferedStream) free(baseCall bool) error {
	return s.release(baseCall, func() error { return s.handle.Disable(api.EvReadWrite) }, func() {
		s.handle.Free()
		s.handle = nil
		s.onRead, s.onWrite, s.onError = nil, nil, nil
	})
}

// Clone returns an unregistered copy bound to the same descriptor with the
// same callbacks, timeouts, watermarks and priority. Buffered data is not
// copied.
func (s *BufferedStream) Clone() (Watcher, error) {
	if err := s.live(); err != nil {
		return nil, err
	}
	b, err := s.dispatcher()
	if err != nil {
		return nil, err
	}
	c := &BufferedStream{
		fd:       s.fd,
		onRead:   s.onRead,
		onWrite:  s.onWrite,
		onError:  s.onError,
		rtimeout: s.rtimeout,
		wtimeout: s.wtimeout,
		rlow:     s.rlow,
		rhigh:    s.rhigh,
		wlow:     s.wlow,
	}
	if err := c.init(c, b, kindStream, ""); err != nil {
		return nil, err
	}
	s.cloneInto(&c.watcher)
	h, err := b.reactor.NewBufferEvent(-1, api.BufferCallbacks{
		OnRead:  c.readReady,
		OnWrite: c.writeReady,
		OnError: c.errorReady,
	})
	if err != nil {
		return nil, newError(KindResourceCreation, "allocate stream handle").WithWatcher(s).Wrap(err)
	}
	c.handle = h
	h.SetTimeouts(c.rtimeout, c.wtimeout)
	h.SetWatermark(api.EvRead, c.rlow, c.rhigh)
	h.SetWatermark(api.EvWrite, c.wlow, 0)
	if err := h.PrioritySet(c.priority); err != nil {
		h.Free()
		return nil, c.reactorError("priority", err)
	}
	if s.state == StateCreated {
		return c, nil
	}
	if err := h.SetFD(c.fd); err != nil {
		h.Free()
		return nil, c.reactorError("bind", err)
	}
	c.state = StateDisabled
	return c, nil
}
