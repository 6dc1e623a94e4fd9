package duplex

import (
	"sync/atomic"

	"github.com/loopwire-audio/loopwire/stream"
)

// Handle composes an input stream handle and an output stream handle into
// a single duplex control surface. InHandle and OutHandle are whatever
// concrete handle types a backend's CreateInputStream/CreateOutputStream
// returned.
type Handle[Callback stream.DuplexCallback, InHandle stream.Handle[*InputProxy], OutHandle stream.Handle[*DuplexCallback[Callback]]] struct {
	in  InHandle
	out OutHandle
}

// Start starts the input stream, then the output stream. The output side
// will read silence from the ring buffer until the input side has
// produced its first block.
func (h *Handle[Callback, InHandle, OutHandle]) Start() error {
	if err := h.in.Start(); err != nil {
		return inputError(err)
	}
	if err := h.out.Start(); err != nil {
		return outputError(err)
	}
	return nil
}

// Stop stops the output stream, then the input stream.
func (h *Handle[Callback, InHandle, OutHandle]) Stop() error {
	if err := h.out.Stop(); err != nil {
		return outputError(err)
	}
	if err := h.in.Stop(); err != nil {
		return inputError(err)
	}
	return nil
}

// Config returns the output stream's resolved configuration, since the
// duplex callback runs on the output side's clock.
func (h *Handle[Callback, InHandle, OutHandle]) Config() stream.ResolvedConfig {
	return h.out.Config()
}

// Eject ejects the input stream first, then the output stream, then
// unwraps the user callback from the output side's DuplexCallback
// wrapper — matching the order a caller's Drop/cleanup logic would expect
// the two underlying native streams torn down in.
func (h *Handle[Callback, InHandle, OutHandle]) Eject() (Callback, error) {
	var zero Callback
	if _, err := h.in.Eject(); err != nil {
		return zero, inputError(err)
	}
	wrapper, err := h.out.Eject()
	if err != nil {
		return zero, outputError(err)
	}
	return wrapper.IntoInner(), nil
}

// CreateDuplexStream bridges an independently opened input stream and
// output stream into one synchronized duplex callback. createInput and
// createOutput are a backend's own generic stream constructors (e.g.
// dummy.CreateInputStream, dummy.CreateOutputStream) bound to the
// proxy/wrapper callback types this package drives them with; Go has no
// way to abstract "a device's generic stream constructor" as a single
// interface value, since interface methods cannot themselves be generic,
// so the constructors are supplied as closures instead.
func CreateDuplexStream[Callback stream.DuplexCallback, InHandle stream.Handle[*InputProxy], OutHandle stream.Handle[*DuplexCallback[Callback]]](
	inputConfig stream.Config,
	outputConfig stream.Config,
	callback Callback,
	createInput func(stream.Config, *InputProxy) (InHandle, error),
	createOutput func(stream.Config, *DuplexCallback[Callback]) (OutHandle, error),
) (*Handle[Callback, InHandle, OutHandle], error) {
	ringFrames := int(inputConfig.SampleRate)
	if ringFrames <= 0 {
		ringFrames = 48000
	}
	channels := outputConfig.OutputChannels
	if channels <= 0 {
		channels = inputConfig.InputChannels
	}
	ring := NewRingBuffer(ringFrames * max(channels, 1))

	var outputSampleRate atomic.Uint64
	proxy := newInputProxy(ring, &outputSampleRate, max(inputConfig.InputChannels, channels))

	inHandle, err := createInput(inputConfig, proxy)
	if err != nil {
		return nil, inputError(err)
	}

	frames := outputConfig.ClampBufferSize(512)
	wrapper, err := newDuplexCallback(ring, &outputSampleRate, channels, frames, callback)
	if err != nil {
		_, _ = inHandle.Eject()
		return nil, &CallbackError{Side: "other", Err: err}
	}

	outHandle, err := createOutput(outputConfig, wrapper)
	if err != nil {
		_, _ = inHandle.Eject()
		return nil, outputError(err)
	}

	return &Handle[Callback, InHandle, OutHandle]{in: inHandle, out: outHandle}, nil
}
