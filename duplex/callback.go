package duplex

import (
	"sync/atomic"

	"github.com/loopwire-audio/loopwire/buffer"
	"github.com/loopwire-audio/loopwire/stream"
)

// DuplexCallback adapts a user-supplied stream.DuplexCallback into a
// stream.OutputCallback the output device drives directly: on every
// output callback it publishes the output side's current sample rate for
// InputProxy to resample against, drains the ring buffer into a scratch
// input buffer, and then calls the wrapped callback with both buffers.
type DuplexCallback[Callback stream.DuplexCallback] struct {
	ring             *RingBuffer
	outputSampleRate *atomic.Uint64
	callback         Callback
	scratch          buffer.Buffer[float32]
}

func newDuplexCallback[Callback stream.DuplexCallback](ring *RingBuffer, outputSampleRate *atomic.Uint64, channels, frames int, callback Callback) (*DuplexCallback[Callback], error) {
	scratch, err := buffer.Zeroed[float32](channels, frames)
	if err != nil {
		return nil, err
	}
	return &DuplexCallback[Callback]{ring: ring, outputSampleRate: outputSampleRate, callback: callback, scratch: scratch}, nil
}

// Prepare forwards to the wrapped callback's Prepare.
func (d *DuplexCallback[Callback]) Prepare(cfg stream.ResolvedConfig) error {
	return d.callback.Prepare(cfg)
}

// OnOutputData publishes the current output sample rate, assembles an
// input buffer from whatever the ring buffer has queued (zero-filling on
// underrun rather than blocking), and dispatches to the wrapped duplex
// callback.
func (d *DuplexCallback[Callback]) OnOutputData(ctx stream.CallbackContext, out stream.AudioOutput) error {
	d.outputSampleRate.Store(uint64(ctx.Config.SampleRate))

	channels := d.scratch.Channels()
	frames := min(out.Buf.Frames(), d.scratch.Frames())
	for i := range frames {
		frame := d.scratch.Frame(i)
		for c := range channels {
			frame.Set(c, d.ring.PopOrZero())
		}
	}
	in, err := d.scratch.Slice(0, frames)
	if err != nil {
		return err
	}
	return d.callback.OnDuplexData(ctx, stream.AudioInput{Buf: in, Timestamp: out.Timestamp}, out)
}

// IntoInner returns the wrapped callback, mirroring the eject protocol's
// need to hand the original callback value back to the caller.
func (d *DuplexCallback[Callback]) IntoInner() Callback { return d.callback }
