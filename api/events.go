// File: api/events.go
// Package api defines core event types for hioload-event.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "strings"

// Flags describes the conditions a reactor event watches for, and the
// conditions reported back to its callback.
type Flags uint16

const (
	EvTimeout Flags = 0x01 // timeout elapsed
	EvRead    Flags = 0x02 // descriptor readable
	EvWrite   Flags = 0x04 // descriptor writable
	EvSignal  Flags = 0x08 // signal delivered; fd carries the signal number
	EvPersist Flags = 0x10 // stay armed after activation
)

// EvReadWrite is the full direction mask for buffered streams.
const EvReadWrite = EvRead | EvWrite

var flagNames = []struct {
	f    Flags
	name string
}{
	{EvTimeout, "timeout"},
	{EvRead, "read"},
	{EvWrite, "write"},
	{EvSignal, "signal"},
	{EvPersist, "persist"},
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, n := range flagNames {
		if f&n.f != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// LoopFlags alter how a single Loop call drives the reactor.
type LoopFlags int

const (
	// LoopDefault blocks until no events remain or the loop is stopped.
	LoopDefault LoopFlags = 0
	// LoopOnce blocks until at least one event is active, runs the active
	// callbacks, then returns.
	LoopOnce LoopFlags = 0x01
	// LoopNonBlock polls without waiting, runs whatever is ready, then returns.
	LoopNonBlock LoopFlags = 0x02
)

// BufferFlags are passed to a buffered stream error callback.
type BufferFlags uint16

const (
	BufferReading BufferFlags = 0x01
	BufferWriting BufferFlags = 0x02
	BufferEOF     BufferFlags = 0x10
	BufferError   BufferFlags = 0x20
	BufferTimeout BufferFlags = 0x40
)

func (f BufferFlags) String() string {
	var parts []string
	if f&BufferReading != 0 {
		parts = append(parts, "reading")
	}
	if f&BufferWriting != 0 {
		parts = append(parts, "writing")
	}
	if f&BufferEOF != 0 {
		parts = append(parts, "eof")
	}
	if f&BufferError != 0 {
		parts = append(parts, "error")
	}
	if f&BufferTimeout != 0 {
		parts = append(parts, "timeout")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
