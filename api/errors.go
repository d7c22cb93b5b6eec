// Package api
// Author: momentics <momentics@gmail.com>
//
// Common reactor errors for hioload-event.

package api

import "errors"

// Errors returned by reactor primitives.
var (
	ErrReactorClosed   = errors.New("reactor is closed")
	ErrHandleFreed     = errors.New("event handle is freed")
	ErrHandleNotSet    = errors.New("event handle is not set")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotSupported    = errors.New("operation not supported")
	ErrEventActive     = errors.New("event is active")
	ErrReentrantLoop   = errors.New("loop is already running")
	ErrBufferFull      = errors.New("buffer is full")
)
