package event_test

import (
	"testing"

	"github.com/momentics/hioload-event/event"
	"github.com/momentics/hioload-event/internal/logging"
	"github.com/stretchr/testify/require"
)

func newBase(t *testing.T, priority int, opts ...event.Option) *event.Base {
	t.Helper()
	opts = append([]event.Option{event.WithLogger(logging.Discard())}, opts...)
	b, err := event.NewBase(priority, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Free() })
	return b
}

// errorSink collects failures raised on the dispatch path.
type errorSink struct {
	errs []error
}

func (s *errorSink) option() event.Option {
	return event.WithErrorHandler(func(err error) { s.errs = append(s.errs, err) })
}

func noop(event.Watcher) {}
