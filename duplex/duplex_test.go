package duplex_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/loopwire-audio/loopwire/backend/dummy"
	"github.com/loopwire-audio/loopwire/device"
	"github.com/loopwire-audio/loopwire/duplex"
	"github.com/loopwire-audio/loopwire/stream"
)

type passthrough struct {
	calls    atomic.Int64
	prepared atomic.Bool
}

func (p *passthrough) Prepare(stream.ResolvedConfig) error {
	p.prepared.Store(true)
	return nil
}

func (p *passthrough) OnDuplexData(_ stream.CallbackContext, in stream.AudioInput, out stream.AudioOutput) error {
	frames := min(in.Buf.Frames(), out.Buf.Frames())
	for c := range out.Buf.Channels() {
		dst := out.Buf.Channel(c)
		src := in.Buf.Channel(min(c, in.Buf.Channels()-1))
		copy(dst[:frames], src[:frames])
	}
	p.calls.Add(1)
	return nil
}

func openDummyPair(t *testing.T) (*dummy.Device, *dummy.Device) {
	t.Helper()
	dr := dummy.NewDriver()
	in, ok, err := dr.DefaultDevice(device.Input)
	if err != nil || !ok {
		t.Fatalf("default input: ok=%v err=%v", ok, err)
	}
	out, ok, err := dr.DefaultDevice(device.Output)
	if err != nil || !ok {
		t.Fatalf("default output: ok=%v err=%v", ok, err)
	}
	return in.(*dummy.Device), out.(*dummy.Device)
}

func TestComposedDuplexDrivesCallbackAndEjects(t *testing.T) {
	inDev, outDev := openDummyPair(t)
	cb := &passthrough{}

	h, err := duplex.CreateDuplexStream(
		stream.Config{SampleRate: 48000, InputChannels: 1, MaxBufferSize: 48},
		stream.Config{SampleRate: 48000, OutputChannels: 1, MaxBufferSize: 48},
		cb,
		func(cfg stream.Config, p *duplex.InputProxy) (stream.Handle[*duplex.InputProxy], error) {
			return dummy.CreateInputStream(inDev, cfg, p)
		},
		func(cfg stream.Config, w *duplex.DuplexCallback[*passthrough]) (stream.Handle[*duplex.DuplexCallback[*passthrough]], error) {
			return dummy.CreateOutputStream(outDev, cfg, w)
		},
	)
	if err != nil {
		t.Fatalf("CreateDuplexStream: %v", err)
	}
	if err := h.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for cb.calls.Load() < 10 {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for duplex callbacks, got %d", cb.calls.Load())
		}
		time.Sleep(time.Millisecond)
	}
	if !cb.prepared.Load() {
		t.Fatalf("Prepare never ran before processing")
	}

	got, err := h.Eject()
	if err != nil {
		t.Fatalf("Eject: %v", err)
	}
	if got != cb {
		t.Fatalf("Eject returned a different callback instance")
	}
	after := cb.calls.Load()
	time.Sleep(10 * time.Millisecond)
	if cb.calls.Load() != after {
		t.Fatalf("duplex callback still invoked after Eject: %d -> %d", after, cb.calls.Load())
	}
}

func TestComposedDuplexSurfacesInputSideFailure(t *testing.T) {
	inDev, outDev := openDummyPair(t)
	cb := &passthrough{}

	_, err := duplex.CreateDuplexStream(
		stream.Config{SampleRate: 1.0, InputChannels: 1},
		stream.Config{SampleRate: 48000, OutputChannels: 1},
		cb,
		func(cfg stream.Config, p *duplex.InputProxy) (stream.Handle[*duplex.InputProxy], error) {
			return dummy.CreateInputStream(inDev, cfg, p)
		},
		func(cfg stream.Config, w *duplex.DuplexCallback[*passthrough]) (stream.Handle[*duplex.DuplexCallback[*passthrough]], error) {
			return dummy.CreateOutputStream(outDev, cfg, w)
		},
	)
	if err == nil {
		t.Fatalf("expected input-side config failure to surface")
	}
	cerr, ok := err.(*duplex.CallbackError)
	if !ok || cerr.Side != "input" {
		t.Fatalf("err = %v, want CallbackError{Side: input}", err)
	}
}
