package stream

import (
	"github.com/loopwire-audio/loopwire/buffer"
	"github.com/loopwire-audio/loopwire/timestamp"
)

// CallbackContext carries the information a callback needs beyond the raw
// samples: the resolved configuration of the stream invoking it, and
// whether the driver reported an xrun since the previous call.
type CallbackContext struct {
	Config  ResolvedConfig
	Xrun    bool
	Elapsed timestamp.Timestamp
}

// AudioInput is the captured-audio argument handed to an InputCallback. Buf
// is a borrowed planar view valid only for the duration of the call; do not
// retain its slices.
type AudioInput struct {
	Buf       buffer.Ref[float32]
	Timestamp timestamp.Timestamp
}

// AudioOutput is the playback-audio argument handed to an OutputCallback.
// Buf is a borrowed mutable planar view valid only for the duration of the
// call; the callback must fill every sample, since the backend does not
// zero it first on every platform.
type AudioOutput struct {
	Buf       buffer.Mut[float32]
	Timestamp timestamp.Timestamp
}

// InputCallback is driven from a stream's audio thread whenever captured
// data is available. Prepare runs once, on a non-realtime thread, before
// the first OnInputData call, and is the place to allocate any scratch
// state OnInputData will need — OnInputData itself must not allocate.
type InputCallback interface {
	Prepare(cfg ResolvedConfig) error
	OnInputData(ctx CallbackContext, in AudioInput) error
}

// OutputCallback is driven from a stream's audio thread whenever playback
// data is needed.
type OutputCallback interface {
	Prepare(cfg ResolvedConfig) error
	OnOutputData(ctx CallbackContext, out AudioOutput) error
}

// DuplexCallback is driven from a stream's audio thread for devices that
// present a single synchronized input+output pair.
type DuplexCallback interface {
	Prepare(cfg ResolvedConfig) error
	OnDuplexData(ctx CallbackContext, in AudioInput, out AudioOutput) error
}

// Handle is a running stream's control surface. Callback is the type of the
// callback that was supplied to the stream constructor, so a successful
// Eject returns it back to the caller with its type intact.
type Handle[Callback any] interface {
	// Start begins invoking the callback from the stream's audio thread.
	Start() error
	// Stop halts the callback without releasing the underlying stream; a
	// stopped stream can be Started again.
	Stop() error
	// Eject stops the stream if running, releases the underlying native
	// resources, and returns the callback so its state can be inspected
	// or reused.
	Eject() (Callback, error)
	// Config returns the stream's resolved configuration.
	Config() ResolvedConfig
}
