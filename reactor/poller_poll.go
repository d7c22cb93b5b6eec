//go:build unix && !linux

// File: reactor/poller_poll.go
// Author: momentics <momentics@gmail.com>
//
// poll(2) fallback for Unix platforms without epoll.

package reactor

import (
	"fmt"
	"time"

	"github.com/momentics/hioload-event/api"
	"golang.org/x/sys/unix"
)

type pollPoller struct {
	fds map[int]api.Flags
	buf []unix.PollFd
}

func newPoller(maxEvents int) (poller, error) {
	return &pollPoller{
		fds: make(map[int]api.Flags),
		buf: make([]unix.PollFd, 0, maxEvents),
	}, nil
}

func (p *pollPoller) add(fd int, mask api.Flags) error {
	if _, ok := p.fds[fd]; ok {
		return fmt.Errorf("poll add fd %d: %w", fd, api.ErrInvalidArgument)
	}
	p.fds[fd] = mask
	return nil
}

func (p *pollPoller) mod(fd int, mask api.Flags) error {
	if _, ok := p.fds[fd]; !ok {
		return fmt.Errorf("poll mod fd %d: %w", fd, api.ErrInvalidArgument)
	}
	p.fds[fd] = mask
	return nil
}

func (p *pollPoller) del(fd int) error {
	delete(p.fds, fd)
	return nil
}

func (p *pollPoller) wait(timeout time.Duration, ready func(fd int, what api.Flags)) error {
	p.buf = p.buf[:0]
	for fd, mask := range p.fds {
		var events int16
		if mask&api.EvRead != 0 {
			events |= unix.POLLIN
		}
		if mask&api.EvWrite != 0 {
			events |= unix.POLLOUT
		}
		p.buf = append(p.buf, unix.PollFd{Fd: int32(fd), Events: events})
	}

	n, err := unix.Poll(p.buf, timeoutMillis(timeout))
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		return fmt.Errorf("poll: %w", err)
	}
	if n == 0 {
		return nil
	}
	for _, pfd := range p.buf {
		if pfd.Revents == 0 {
			continue
		}
		var what api.Flags
		if pfd.Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
			what |= api.EvRead
		}
		if pfd.Revents&(unix.POLLOUT|unix.POLLHUP|unix.POLLERR) != 0 {
			what |= api.EvWrite
		}
		ready(int(pfd.Fd), what)
	}
	return nil
}

func (p *pollPoller) close() error {
	p.fds = nil
	return nil
}
