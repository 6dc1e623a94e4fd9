package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/loopwire-audio/loopwire/buffer"
	"github.com/loopwire-audio/loopwire/stream"
)

// NativeOps are the three operations a backend's native stream exposes.
// Engine calls them synchronously; none of them are expected to block for
// longer than a device open/close ordinarily takes.
type NativeOps struct {
	Start func() error
	Stop  func() error
	Close func() error
}

// Engine is the generic lifecycle state machine every backend wraps its
// native stream handle in. Callback is whatever callback type the caller
// constructed the stream with (an InputCallback, OutputCallback or
// DuplexCallback implementation); Engine itself never invokes it — that
// happens on the backend's native callback thread, outside Engine — but
// Engine owns handing it back intact from Eject.
type Engine[Callback any] struct {
	id       string
	log      *slog.Logger
	mu       sync.Mutex
	state    atomic.Int32
	ejecting atomic.Bool
	callback Callback
	cfg      stream.ResolvedConfig
	ops      NativeOps
	xruns    atomic.Uint64
	prepared bool

	scratchIn  *buffer.Buffer[float32]
	scratchOut *buffer.Buffer[float32]
}

// New constructs an Engine in the Uninitialized state.
func New[Callback any](callback Callback, cfg stream.ResolvedConfig, ops NativeOps, log *slog.Logger) *Engine[Callback] {
	if log == nil {
		log = slog.Default()
	}
	id := uuid.NewString()
	e := &Engine[Callback]{
		id:       id,
		log:      log.With(slog.String("stream_id", id)),
		callback: callback,
		cfg:      cfg,
		ops:      ops,
	}
	e.state.Store(int32(Uninitialized))
	return e
}

// State returns the engine's current lifecycle state.
func (e *Engine[Callback]) State() State { return State(e.state.Load()) }

// Callback returns the callback the engine was constructed with, without
// affecting lifecycle state. A backend's native callback thread uses this
// to reach the user callback on every invocation; Eject uses it to hand
// the callback back to the caller exactly once.
func (e *Engine[Callback]) Callback() Callback { return e.callback }

// Config returns the stream's resolved configuration.
func (e *Engine[Callback]) Config() stream.ResolvedConfig { return e.cfg }

// SetMaxFrameCount updates the resolved configuration's MaxFrameCount, for
// a backend that only learns the buffer size the native library actually
// settled on after opening the stream. It must be called before Start;
// once the stream runs the resolved configuration is immutable.
func (e *Engine[Callback]) SetMaxFrameCount(n int) { e.cfg.MaxFrameCount = n }

// AllocateScratch preallocates a planar float32 buffer of the given shape
// for a backend to reuse across every callback invocation, so the
// real-time callback path performs no allocation. direction is "in" or
// "out" and selects which scratch slot is populated.
func (e *Engine[Callback]) AllocateScratch(direction string, channels, frames int) (*buffer.Buffer[float32], error) {
	b, err := buffer.Zeroed[float32](channels, frames)
	if err != nil {
		return nil, err
	}
	switch direction {
	case "in":
		e.scratchIn = &b
		return e.scratchIn, nil
	case "out":
		e.scratchOut = &b
		return e.scratchOut, nil
	default:
		return nil, fmt.Errorf("engine: unknown scratch direction %q", direction)
	}
}

// ScratchInput returns the buffer allocated by a prior AllocateScratch("in", ...) call, if any.
func (e *Engine[Callback]) ScratchInput() *buffer.Buffer[float32] { return e.scratchIn }

// ScratchOutput returns the buffer allocated by a prior AllocateScratch("out", ...) call, if any.
func (e *Engine[Callback]) ScratchOutput() *buffer.Buffer[float32] { return e.scratchOut }

// Start transitions Uninitialized -> Preparing -> Running, calling the
// callback's Prepare hook and then the native start operation. The hook
// runs only on the first successful Start; restarting after Stop skips it.
func (e *Engine[Callback]) Start(prepare func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.State() {
	case Running:
		return nil
	case Uninitialized:
	default:
		return &ErrInvalidTransition{From: e.State(), Op: "start"}
	}

	e.state.Store(int32(Preparing))
	if prepare != nil && !e.prepared {
		if err := prepare(); err != nil {
			e.state.Store(int32(Uninitialized))
			return fmt.Errorf("engine: prepare: %w", err)
		}
		e.prepared = true
	}
	if err := e.ops.Start(); err != nil {
		e.state.Store(int32(Uninitialized))
		return fmt.Errorf("engine: native start: %w", err)
	}
	e.log.Info("stream started",
		slog.Float64("sample_rate", e.cfg.SampleRate),
		slog.Int("input_channels", e.cfg.InputChannels),
		slog.Int("output_channels", e.cfg.OutputChannels))
	e.state.Store(int32(Running))
	return nil
}

// Stop transitions Running -> Stopping -> Uninitialized, so the stream can
// be Started again.
func (e *Engine[Callback]) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.State() {
	case Uninitialized:
		return nil
	case Running:
	default:
		return &ErrInvalidTransition{From: e.State(), Op: "stop"}
	}

	e.state.Store(int32(Stopping))
	if err := e.ops.Stop(); err != nil {
		e.state.Store(int32(Running))
		return fmt.Errorf("engine: native stop: %w", err)
	}
	e.state.Store(int32(Uninitialized))
	e.log.Info("stream stopped", slog.Uint64("xruns", e.xruns.Load()))
	return nil
}

// Ejecting reports whether Eject has been called. A backend's native
// callback wrapper should check this before invoking the user callback and
// return silence (or drop captured input) instead, since the native
// library may still deliver a handful of in-flight callbacks concurrently
// with Eject tearing the stream down.
func (e *Engine[Callback]) Ejecting() bool { return e.ejecting.Load() }

// Eject stops the stream if running, closes the native resources, and
// returns the callback so the caller can inspect or reuse its state. Eject
// succeeds once; a second call returns an error.
func (e *Engine[Callback]) Eject() (Callback, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var zero Callback
	if e.State() == Terminated {
		return zero, &ErrInvalidTransition{From: e.State(), Op: "eject"}
	}

	e.ejecting.Store(true)
	if e.State() == Running {
		e.state.Store(int32(Stopping))
		if err := e.ops.Stop(); err != nil {
			e.log.Warn("native stop failed during eject", slog.Any("error", err))
		}
	}
	if err := e.ops.Close(); err != nil {
		return zero, fmt.Errorf("engine: native close: %w", err)
	}
	e.state.Store(int32(Terminated))
	e.log.Info("stream ejected", slog.Uint64("xruns", e.xruns.Load()))
	return e.callback, nil
}

// RecordXrun increments the stream's xrun counter and logs at debug level.
// Backends call this from their native callback wrapper when the driver
// reports an overflow or underflow status for the current call.
func (e *Engine[Callback]) RecordXrun() {
	n := e.xruns.Add(1)
	e.log.Debug("xrun", slog.Uint64("count", n))
}

// Xruns returns the number of xruns recorded since the stream was opened.
func (e *Engine[Callback]) Xruns() uint64 { return e.xruns.Load() }
