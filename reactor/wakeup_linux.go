//go:build linux
// +build linux

// File: reactor/wakeup_linux.go
// Author: momentics <momentics@gmail.com>
//
// eventfd(2)-based poller wakeup.

package reactor

import (
	"encoding/binary"
	"sync"

	"golang.org/x/sys/unix"
)

// wakeup interrupts a blocking poll from another goroutine.
type wakeup struct {
	mu     sync.Mutex
	efd    int
	closed bool
}

func newWakeup() (*wakeup, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		return nil, err
	}
	return &wakeup{efd: fd}, nil
}

func (w *wakeup) fd() int { return w.efd }

func (w *wakeup) notify() {
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], 1)
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		_, _ = unix.Write(w.efd, buf[:])
	}
}

func (w *wakeup) drain() {
	var buf [8]byte
	_, _ = unix.Read(w.efd, buf[:])
}

func (w *wakeup) close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return unix.Close(w.efd)
}
