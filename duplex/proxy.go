package duplex

import (
	"log/slog"
	"sync/atomic"

	"github.com/loopwire-audio/loopwire/stream"
)

// InputProxy is the AudioInputCallback half of a duplex stream: it runs on
// the input device's own callback thread, resamples captured audio to
// match whatever rate the output side is actually running at, and pushes
// the result into a RingBuffer the output side drains.
//
// OutputSampleRate is updated by the output side on every callback, and
// read here with no lock, so InputProxy always resamples against the most
// recently observed output rate rather than the rate it was constructed
// with; the two streams' clocks are not assumed to be phase-locked.
type InputProxy struct {
	ring             *RingBuffer
	outputSampleRate *atomic.Uint64
	scratch          []float32 // one interpolated sample per channel, sized at construction
	log              *slog.Logger
}

func newInputProxy(ring *RingBuffer, outputSampleRate *atomic.Uint64, channels int) *InputProxy {
	if channels < 1 {
		channels = 1
	}
	return &InputProxy{
		ring:             ring,
		outputSampleRate: outputSampleRate,
		scratch:          make([]float32, channels),
		log:              slog.Default().With(slog.String("component", "duplex.InputProxy")),
	}
}

// Prepare satisfies stream.InputCallback; InputProxy needs no setup beyond
// what newInputProxy already did.
func (p *InputProxy) Prepare(stream.ResolvedConfig) error { return nil }

// OnInputData resamples the captured frame block to the output side's rate
// and pushes the result into the ring buffer, frame by frame,
// channel-interleaved so the output side can pop in the same order.
func (p *InputProxy) OnInputData(ctx stream.CallbackContext, in stream.AudioInput) error {
	outRate := float64(p.outputSampleRate.Load())
	if outRate == 0 {
		// Output side has not run yet; nothing to resample against.
		return nil
	}
	inRate := ctx.Config.SampleRate
	if inRate == 0 {
		inRate = outRate
	}
	ratio := outRate / inRate
	inFrames := in.Buf.Frames()
	outFrames := int(float64(inFrames) * ratio)
	channels := min(in.Buf.Channels(), len(p.scratch))

	// The consumer pops strictly channels-at-a-time, so a partially
	// written frame would skew every later sample by one channel. Check
	// capacity up front and drop the whole block when it cannot fit,
	// rather than pushing until the ring fills mid-frame.
	if p.ring.Free() < outFrames*channels {
		p.log.Debug("input proxy buffer overrun, dropping block",
			slog.Int("frames", outFrames))
		return nil
	}

	scratch := p.scratch
	for i := 0; i < outFrames; i++ {
		srcPos := float64(i) / ratio
		lo := int(srcPos)
		hi := lo + 1
		frac := float32(srcPos - float64(lo))
		if hi >= inFrames {
			frame := in.Buf.Frame(lo)
			for c := range channels {
				scratch[c] = frame.Get(c)
			}
		} else {
			a := in.Buf.Frame(lo)
			b := in.Buf.Frame(hi)
			for c := range channels {
				scratch[c] = lerp(frac, a.Get(c), b.Get(c))
			}
		}
		// This callback is the ring's only producer, so the upfront
		// capacity check guarantees these pushes cannot fail.
		for c := range channels {
			p.ring.Push(scratch[c])
		}
	}
	return nil
}

func lerp(x, a, b float32) float32 { return a + (b-a)*x }
