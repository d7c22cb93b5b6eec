// File: reactor/bufferevent.go
// Author: momentics <momentics@gmail.com>
//
// Buffered stream handle: a read and a write event on one descriptor with
// input/output buffers, watermarks and per-direction timeouts.

package reactor

import (
	"bytes"
	"fmt"
	"time"

	"github.com/momentics/hioload-event/api"
)

// BufferEvent implements api.BufferHandle.
type BufferEvent struct {
	base *Base
	fd   int
	rev  *Event
	wev  *Event

	input  bytes.Buffer
	output bytes.Buffer
	cb     api.BufferCallbacks

	enabled  api.Flags
	rlow     int
	rhigh    int
	wlow     int
	rtimeout time.Duration
	wtimeout time.Duration
	stalled  bool
	freed    bool
}

var _ api.BufferHandle = (*BufferEvent)(nil)

// NewBufferEvent allocates a buffered stream. fd may be negative and
// assigned later with SetFD.
func (b *Base) NewBufferEvent(fd int, cb api.BufferCallbacks) (api.BufferHandle, error) {
	if b.closed {
		return nil, api.ErrReactorClosed
	}
	be := &BufferEvent{
		base:     b,
		fd:       -1,
		rev:      b.newEvent(),
		wev:      b.newEvent(),
		cb:       cb,
		rtimeout: -1,
		wtimeout: -1,
	}
	if fd >= 0 {
		if err := be.SetFD(fd); err != nil {
			return nil, err
		}
	}
	return be, nil
}

func (be *BufferEvent) SetCallbacks(cb api.BufferCallbacks) {
	be.cb = cb
}

// Enable turns on the given directions. Write readiness is only watched
// while output is pending.
func (be *BufferEvent) Enable(what api.Flags) error {
	if be.freed {
		return api.ErrHandleFreed
	}
	if what&^api.EvReadWrite != 0 {
		return fmt.Errorf("reactor: buffer enable %s: %w", what, api.ErrInvalidArgument)
	}
	be.enabled |= what
	return be.rearm()
}

func (be *BufferEvent) Disable(what api.Flags) error {
	if be.freed {
		return api.ErrHandleFreed
	}
	if what&^api.EvReadWrite != 0 {
		return fmt.Errorf("reactor: buffer disable %s: %w", what, api.ErrInvalidArgument)
	}
	be.enabled &^= what
	return be.rearm()
}

func (be *BufferEvent) Enabled() api.Flags { return be.enabled }

func (be *BufferEvent) rearm() error {
	if be.fd < 0 {
		return nil
	}
	if be.enabled&api.EvRead != 0 && !be.stalled {
		if err := be.rev.Add(be.rtimeout); err != nil {
			return err
		}
	} else if err := be.rev.Del(); err != nil {
		return err
	}
	if be.enabled&api.EvWrite != 0 && be.output.Len() > 0 {
		return be.wev.Add(be.wtimeout)
	}
	return be.wev.Del()
}

// Read drains up to n bytes of buffered input. Draining below the high
// watermark resumes a stalled read.
func (be *BufferEvent) Read(n int) []byte {
	if n <= 0 || be.input.Len() == 0 {
		return nil
	}
	out := make([]byte, min(n, be.input.Len()))
	_, _ = be.input.Read(out)
	if be.stalled && !be.freed && (be.rhigh == 0 || be.input.Len() < be.rhigh) {
		be.stalled = false
		_ = be.rearm()
	}
	return out
}

// Write queues p for output.
func (be *BufferEvent) Write(p []byte) error {
	if be.freed {
		return api.ErrHandleFreed
	}
	if limit := be.base.maxBuffer; limit > 0 && be.output.Len()+len(p) > limit {
		return fmt.Errorf("reactor: %d bytes pending: %w", be.output.Len(), api.ErrBufferFull)
	}
	be.output.Write(p)
	if be.enabled&api.EvWrite != 0 && be.fd >= 0 && !be.wev.inserted {
		return be.wev.Add(be.wtimeout)
	}
	return nil
}

func (be *BufferEvent) InputLen() int  { return be.input.Len() }
func (be *BufferEvent) OutputLen() int { return be.output.Len() }
func (be *BufferEvent) FD() int        { return be.fd }

// SetFD moves the stream to another descriptor, keeping buffers and the
// enabled directions.
func (be *BufferEvent) SetFD(fd int) error {
	if be.freed {
		return api.ErrHandleFreed
	}
	if fd < 0 {
		return fmt.Errorf("reactor: invalid descriptor %d: %w", fd, api.ErrInvalidArgument)
	}
	if err := be.rev.Del(); err != nil {
		return err
	}
	if err := be.wev.Del(); err != nil {
		return err
	}
	if err := be.rev.Set(fd, api.EvRead|api.EvPersist, be.onReadable); err != nil {
		return err
	}
	if err := be.wev.Set(fd, api.EvWrite|api.EvPersist, be.onWritable); err != nil {
		return err
	}
	be.fd = fd
	be.stalled = false
	return be.rearm()
}

// SetTimeouts sets per-direction inactivity timeouts. Non-positive values
// disable a timeout.
func (be *BufferEvent) SetTimeouts(read, write time.Duration) {
	if read <= 0 {
		read = -1
	}
	if write <= 0 {
		write = -1
	}
	be.rtimeout, be.wtimeout = read, write
	if be.rev.inserted {
		_ = be.rev.Add(be.rtimeout)
	}
	if be.wev.inserted {
		_ = be.wev.Add(be.wtimeout)
	}
}

// SetWatermark sets the read low/high or the write low watermark. A zero
// high watermark means unlimited.
func (be *BufferEvent) SetWatermark(what api.Flags, low, high int) {
	if what&api.EvRead != 0 {
		be.rlow, be.rhigh = low, high
		if be.stalled && (high == 0 || be.input.Len() < high) {
			be.stalled = false
			if !be.freed {
				_ = be.rearm()
			}
		}
	}
	if what&api.EvWrite != 0 {
		be.wlow = low
	}
}

func (be *BufferEvent) PrioritySet(pri int) error {
	if be.freed {
		return api.ErrHandleFreed
	}
	if err := be.rev.PrioritySet(pri); err != nil {
		return err
	}
	return be.wev.PrioritySet(pri)
}

// Free disarms both directions and drops buffered data.
func (be *BufferEvent) Free() {
	if be.freed {
		return
	}
	be.rev.Free()
	be.wev.Free()
	be.freed = true
	be.enabled = 0
	be.input.Reset()
	be.output.Reset()
	be.cb = api.BufferCallbacks{}
}

func (be *BufferEvent) stall() {
	be.stalled = true
	_ = be.rev.Del()
}

func (be *BufferEvent) fail(what api.BufferFlags) {
	if be.cb.OnError != nil {
		be.cb.OnError(what)
	}
}

func (be *BufferEvent) onReadable(fd int, what api.Flags) {
	if what&api.EvTimeout != 0 && what&api.EvRead == 0 {
		be.enabled &^= api.EvRead
		_ = be.rev.Del()
		be.fail(api.BufferReading | api.BufferTimeout)
		return
	}

	chunks := be.base.chunks
	want := chunks.Size()
	if be.rhigh > 0 {
		room := be.rhigh - be.input.Len()
		if room <= 0 {
			be.stall()
			return
		}
		want = min(want, room)
	}
	buf := chunks.GetBuffer()
	n, err := sysRead(fd, buf[:want])
	if n > 0 {
		be.input.Write(buf[:n])
	}
	chunks.PutBuffer(buf)

	switch {
	case err != nil && isTemporary(err):
		return
	case err != nil:
		be.enabled &^= api.EvRead
		_ = be.rev.Del()
		be.fail(api.BufferReading | api.BufferError)
		return
	case n == 0:
		be.enabled &^= api.EvRead
		_ = be.rev.Del()
		be.fail(api.BufferReading | api.BufferEOF)
		return
	}

	if be.rhigh > 0 && be.input.Len() >= be.rhigh {
		be.stall()
	}
	if be.input.Len() >= be.rlow && be.cb.OnRead != nil {
		be.cb.OnRead()
	}
}

func (be *BufferEvent) onWritable(fd int, what api.Flags) {
	if what&api.EvTimeout != 0 && what&api.EvWrite == 0 {
		be.enabled &^= api.EvWrite
		_ = be.wev.Del()
		be.fail(api.BufferWriting | api.BufferTimeout)
		return
	}

	if be.output.Len() > 0 {
		n, err := sysWrite(fd, be.output.Bytes())
		if err != nil {
			if isTemporary(err) {
				return
			}
			be.enabled &^= api.EvWrite
			_ = be.wev.Del()
			if isBrokenPipe(err) {
				be.fail(api.BufferWriting | api.BufferEOF)
			} else {
				be.fail(api.BufferWriting | api.BufferError)
			}
			return
		}
		be.output.Next(n)
	}
	if be.output.Len() == 0 {
		_ = be.wev.Del()
	}
	if be.output.Len() <= be.wlow && be.cb.OnWrite != nil {
		be.cb.OnWrite()
	}
}
