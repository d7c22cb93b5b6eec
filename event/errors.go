// File: event/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Structured failures raised by dispatchers and watchers. Every error carries
// its kind and, when known, the dispatcher and watcher that produced it.

package event

import (
	"fmt"
	"strings"
)

// ErrorKind classifies failures.
type ErrorKind int

const (
	KindResourceCreation ErrorKind = iota + 1
	KindConfiguration
	KindRegistrationConflict
	KindInvalidState
	KindInvalidCallback
	KindInvalidArgument
	KindIO
	KindDispatch
)

func (k ErrorKind) String() string {
	switch k {
	case KindResourceCreation:
		return "resource creation"
	case KindConfiguration:
		return "configuration"
	case KindRegistrationConflict:
		return "registration conflict"
	case KindInvalidState:
		return "invalid state"
	case KindInvalidCallback:
		return "invalid callback"
	case KindInvalidArgument:
		return "invalid argument"
	case KindIO:
		return "io"
	case KindDispatch:
		return "dispatch"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrResourceCreation     = &Error{Kind: KindResourceCreation}
	ErrConfiguration        = &Error{Kind: KindConfiguration}
	ErrRegistrationConflict = &Error{Kind: KindRegistrationConflict}
	ErrInvalidState         = &Error{Kind: KindInvalidState}
	ErrInvalidCallback      = &Error{Kind: KindInvalidCallback}
	ErrInvalidArgument      = &Error{Kind: KindInvalidArgument}
	ErrIO                   = &Error{Kind: KindIO}
	ErrDispatch             = &Error{Kind: KindDispatch}
)

// Error is the failure value of this package. Base and Watcher are
// read-only references; the error owns neither.
type Error struct {
	Kind    ErrorKind
	Message string
	Base    *Base
	Watcher Watcher
	Err     error
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithBase attaches the dispatcher implicated in the failure.
func (e *Error) WithBase(b *Base) *Error {
	e.Base = b
	return e
}

// WithWatcher attaches the watcher implicated in the failure and, when
// still reachable, its dispatcher.
func (e *Error) WithWatcher(w Watcher) *Error {
	if w == nil {
		return e
	}
	e.Watcher = w
	if e.Base == nil {
		e.Base = w.Base()
	}
	return e
}

// Wrap records the underlying cause.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("event: ")
	sb.WriteString(e.Kind.String())
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Watcher != nil {
		fmt.Fprintf(&sb, " [watcher=%s]", e.Watcher.Name())
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Code returns the numeric family of the failing object: 100 for events,
// 101 for timers, 102 for buffered streams, 200 for dispatchers and 0 when
// neither is attached.
func (e *Error) Code() int {
	switch e.Watcher.(type) {
	case *Timer:
		return 101
	case *BufferedStream:
		return 102
	case *Event:
		return 100
	}
	if e.Base != nil {
		return 200
	}
	return 0
}
