//go:build linux
// +build linux

// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor - Linux epoll implementation.

package reactor

import (
	"fmt"
	"time"

	"github.com/momentics/hioload-event/api"
	"golang.org/x/sys/unix"
)

// epollPoller implements poller using level-triggered epoll.
type epollPoller struct {
	epfd   int
	events []unix.EpollEvent
}

func newPoller(maxEvents int) (poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	return &epollPoller{
		epfd:   epfd,
		events: make([]unix.EpollEvent, maxEvents),
	}, nil
}

func epollMask(mask api.Flags) uint32 {
	var ev uint32
	if mask&api.EvRead != 0 {
		ev |= unix.EPOLLIN | unix.EPOLLRDHUP
	}
	if mask&api.EvWrite != 0 {
		ev |= unix.EPOLLOUT
	}
	return ev
}

func (p *epollPoller) add(fd int, mask api.Flags) error {
	ev := unix.EpollEvent{Events: epollMask(mask), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return fmt.Errorf("epoll ctl add: %w", err)
	}
	return nil
}

func (p *epollPoller) mod(fd int, mask api.Flags) error {
	ev := unix.EpollEvent{Events: epollMask(mask), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		return fmt.Errorf("epoll ctl mod: %w", err)
	}
	return nil
}

func (p *epollPoller) del(fd int) error {
	err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	// A closed descriptor has already left the interest list.
	if err != nil && err != unix.ENOENT && err != unix.EBADF {
		return fmt.Errorf("epoll ctl del: %w", err)
	}
	return nil
}

func (p *epollPoller) wait(timeout time.Duration, ready func(fd int, what api.Flags)) error {
	n, err := unix.EpollWait(p.epfd, p.events, timeoutMillis(timeout))
	if err != nil {
		if err == unix.EINTR {
			return nil // interrupted by a signal
		}
		return fmt.Errorf("epoll wait: %w", err)
	}
	for i := 0; i < n; i++ {
		ev := p.events[i]
		var what api.Flags
		if ev.Events&(unix.EPOLLIN|unix.EPOLLRDHUP|unix.EPOLLHUP|unix.EPOLLERR) != 0 {
			what |= api.EvRead
		}
		if ev.Events&(unix.EPOLLOUT|unix.EPOLLHUP|unix.EPOLLERR) != 0 {
			what |= api.EvWrite
		}
		ready(int(ev.Fd), what)
	}
	return nil
}

func (p *epollPoller) close() error {
	return unix.Close(p.epfd)
}
