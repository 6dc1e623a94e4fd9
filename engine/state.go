// Package engine implements the stream state machine shared by every
// backend: Uninitialized -> Preparing -> Running -> Stopping ->
// Terminated, plus the cooperative eject protocol that hands the callback
// back to its caller once the underlying native stream has been closed.
//
// The native audio libraries this module binds to (rtaudio, and the
// platform APIs it wraps) always invoke the audio callback from a thread
// the library itself owns, for every backend. Engine therefore does not
// spawn or manage a callback thread of its own; it tracks lifecycle state
// and lets each backend's thin wrapper drive the native start/stop/close
// calls synchronously from whatever goroutine calls Engine's methods.
package engine

import "fmt"

// State is a stream's position in its lifecycle.
type State int32

const (
	Uninitialized State = iota
	Preparing
	Running
	Stopping
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Preparing:
		return "preparing"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned when a lifecycle method is called from a
// state that does not permit it.
type ErrInvalidTransition struct {
	From State
	Op   string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("engine: cannot %s from state %s", e.Op, e.From)
}
