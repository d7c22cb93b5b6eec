// File: reactor/poller.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral readiness poller contract.

package reactor

import (
	"time"

	"github.com/momentics/hioload-event/api"
)

// poller watches descriptors for EvRead/EvWrite readiness.
type poller interface {
	add(fd int, mask api.Flags) error
	mod(fd int, mask api.Flags) error
	del(fd int) error
	// wait blocks up to timeout (negative: forever) and reports ready fds.
	wait(timeout time.Duration, ready func(fd int, what api.Flags)) error
	close() error
}

// timeoutMillis rounds up so a short timeout never degrades into a busy poll.
func timeoutMillis(d time.Duration) int {
	if d < 0 {
		return -1
	}
	return int((d + time.Millisecond - 1) / time.Millisecond)
}
