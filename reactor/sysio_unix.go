//go:build unix

// File: reactor/sysio_unix.go
// Author: momentics <momentics@gmail.com>

package reactor

import "golang.org/x/sys/unix"

func sysRead(fd int, p []byte) (int, error)  { return unix.Read(fd, p) }
func sysWrite(fd int, p []byte) (int, error) { return unix.Write(fd, p) }

func isTemporary(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK || err == unix.EINTR
}

func isBrokenPipe(err error) bool {
	return err == unix.EPIPE || err == unix.ECONNRESET
}
