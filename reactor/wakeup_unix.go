//go:build unix && !linux

// File: reactor/wakeup_unix.go
// Author: momentics <momentics@gmail.com>
//
// Self-pipe poller wakeup for Unix platforms without eventfd.

package reactor

import (
	"sync"

	"golang.org/x/sys/unix"
)

type wakeup struct {
	mu     sync.Mutex
	r, w   int
	closed bool
}

func newWakeup() (*wakeup, error) {
	var p [2]int
	if err := unix.Pipe(p[:]); err != nil {
		return nil, err
	}
	for _, fd := range p {
		unix.CloseOnExec(fd)
		if err := unix.SetNonblock(fd, true); err != nil {
			_ = unix.Close(p[0])
			_ = unix.Close(p[1])
			return nil, err
		}
	}
	return &wakeup{r: p[0], w: p[1]}, nil
}

func (w *wakeup) fd() int { return w.r }

func (w *wakeup) notify() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		_, _ = unix.Write(w.w, []byte{1})
	}
}

func (w *wakeup) drain() {
	var buf [64]byte
	for {
		if n, err := unix.Read(w.r, buf[:]); n <= 0 || err != nil {
			return
		}
	}
}

func (w *wakeup) close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	err := unix.Close(w.r)
	if werr := unix.Close(w.w); err == nil {
		err = werr
	}
	return err
}
