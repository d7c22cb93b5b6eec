// File: reactor/timerheap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

import (
	"container/heap"
	"time"

	"github.com/momentics/hioload-event/api"
)

// timerHeap orders armed timeouts by deadline.
type timerHeap []*Event

func (h timerHeap) Len() int           { return len(h) }
func (h timerHeap) Less(i, j int) bool { return h[i].deadline.Before(h[j].deadline) }

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIdx = i
	h[j].heapIdx = j
}

func (h *timerHeap) Push(x any) {
	e := x.(*Event)
	e.heapIdx = len(*h)
	*h = append(*h, e)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.heapIdx = -1
	*h = old[:n-1]
	return e
}

func (b *Base) schedule(e *Event, at time.Time) {
	e.deadline = at
	if e.heapIdx >= 0 {
		heap.Fix(&b.timers, e.heapIdx)
		return
	}
	heap.Push(&b.timers, e)
}

func (b *Base) unschedule(e *Event) {
	if e.heapIdx >= 0 {
		heap.Remove(&b.timers, e.heapIdx)
	}
}

// nextTimeout returns the wait until the earliest deadline.
func (b *Base) nextTimeout() (time.Duration, bool) {
	if len(b.timers) == 0 {
		return 0, false
	}
	d := time.Until(b.timers[0].deadline)
	if d < 0 {
		d = 0
	}
	return d, true
}

// expireTimers activates every timeout due at now. Timeouts armed by the
// callbacks of this pass are only seen by the next one.
func (b *Base) expireTimers(now time.Time) {
	for len(b.timers) > 0 && !b.timers[0].deadline.After(now) {
		e := heap.Pop(&b.timers).(*Event)
		b.activate(e, api.EvTimeout)
	}
}
