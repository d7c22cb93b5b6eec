//go:build !unix

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package reactor

import "github.com/momentics/hioload-event/api"

type wakeup struct{}

func newPoller(int) (poller, error) { return nil, api.ErrNotSupported }
func newWakeup() (*wakeup, error)   { return nil, api.ErrNotSupported }

func (w *wakeup) fd() int      { return -1 }
func (w *wakeup) notify()      {}
func (w *wakeup) drain()       {}
func (w *wakeup) close() error { return nil }

func sysRead(int, []byte) (int, error)  { return 0, api.ErrNotSupported }
func sysWrite(int, []byte) (int, error) { return 0, api.ErrNotSupported }
func isTemporary(error) bool            { return false }
func isBrokenPipe(error) bool           { return false }
