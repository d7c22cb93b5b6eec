// File: reactor/signal.go
// Author: momentics <momentics@gmail.com>
//
// Signal delivery: one os/signal forwarder per watched signal number records
// the delivery and wakes the poller; the loop goroutine activates the events.

package reactor

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/momentics/hioload-event/api"
)

type sigWatch struct {
	events []*Event
	ch     chan os.Signal
	done   chan struct{}
}

type signalSet struct {
	wake     *wakeup
	watchers map[int]*sigWatch // loop goroutine only

	mu     sync.Mutex
	caught map[int]int
}

func newSignalSet(w *wakeup) *signalSet {
	return &signalSet{
		wake:     w,
		watchers: make(map[int]*sigWatch),
		caught:   make(map[int]int),
	}
}

func (s *signalSet) add(e *Event) {
	sw := s.watchers[e.fd]
	if sw == nil {
		sw = &sigWatch{
			ch:   make(chan os.Signal, 1),
			done: make(chan struct{}),
		}
		s.watchers[e.fd] = sw
		signal.Notify(sw.ch, syscall.Signal(e.fd))
		go s.forward(e.fd, sw)
	}
	sw.events = append(sw.events, e)
}

func (s *signalSet) forward(signum int, sw *sigWatch) {
	for {
		select {
		case <-sw.ch:
			s.mu.Lock()
			s.caught[signum]++
			s.mu.Unlock()
			s.wake.notify()
		case <-sw.done:
			return
		}
	}
}

func (s *signalSet) del(e *Event) {
	sw := s.watchers[e.fd]
	if sw == nil {
		return
	}
	kept := sw.events[:0]
	for _, other := range sw.events {
		if other != e {
			kept = append(kept, other)
		}
	}
	sw.events = kept
	if len(kept) == 0 {
		signal.Stop(sw.ch)
		close(sw.done)
		delete(s.watchers, e.fd)
	}
}

// drain activates the events of every signal caught since the last call.
func (s *signalSet) drain(activate func(*Event, api.Flags)) {
	s.mu.Lock()
	if len(s.caught) == 0 {
		s.mu.Unlock()
		return
	}
	caught := s.caught
	s.caught = make(map[int]int)
	s.mu.Unlock()

	for signum := range caught {
		sw := s.watchers[signum]
		if sw == nil {
			continue
		}
		for _, e := range sw.events {
			activate(e, api.EvSignal)
		}
	}
}

func (s *signalSet) stop() {
	for signum, sw := range s.watchers {
		signal.Stop(sw.ch)
		close(sw.done)
		delete(s.watchers, signum)
	}
}
