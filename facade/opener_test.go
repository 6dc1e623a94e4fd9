package facade_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/loopwire-audio/loopwire/backend/dummy"
	"github.com/loopwire-audio/loopwire/device"
	"github.com/loopwire-audio/loopwire/facade"
	"github.com/loopwire-audio/loopwire/stream"
)

type countingOutput struct {
	calls atomic.Int64
}

func (c *countingOutput) Prepare(stream.ResolvedConfig) error { return nil }
func (c *countingOutput) OnOutputData(_ stream.CallbackContext, out stream.AudioOutput) error {
	for ch := range out.Buf.Channels() {
		clear(out.Buf.Channel(ch))
	}
	c.calls.Add(1)
	return nil
}

func defaultDevice(t *testing.T, kind device.DeviceType) device.Device {
	t.Helper()
	d, ok, err := dummy.NewDriver().DefaultDevice(kind)
	if err != nil || !ok {
		t.Fatalf("DefaultDevice(%v): ok=%v err=%v", kind, ok, err)
	}
	return d
}

func TestOpenOutputThroughErasedDevice(t *testing.T) {
	d := defaultDevice(t, device.Output)
	cb := &countingOutput{}
	h, err := facade.OpenOutput(d, stream.Config{SampleRate: 48000, OutputChannels: 2, MaxBufferSize: 48}, cb)
	if err != nil {
		t.Fatalf("OpenOutput: %v", err)
	}
	if err := h.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for cb.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("no callback delivered through erased handle")
		}
		time.Sleep(time.Millisecond)
	}
	got, err := facade.EjectAs[*countingOutput](h)
	if err != nil {
		t.Fatalf("EjectAs: %v", err)
	}
	if got != cb {
		t.Fatalf("EjectAs returned a different callback instance")
	}
}

func TestOpenOutputRejectsAbsurdRateThroughErasedDevice(t *testing.T) {
	d := defaultDevice(t, device.Output)
	_, err := facade.OpenOutput(d, stream.Config{SampleRate: 1.0, OutputChannels: 2}, &countingOutput{})
	var serr *stream.Error
	if !errors.As(err, &serr) || serr.Kind != stream.ConfigurationNotAvailable {
		t.Fatalf("err = %v, want ConfigurationNotAvailable", err)
	}
}

func TestOpenDirectionDeviceDoesNotAdvertise(t *testing.T) {
	d := defaultDevice(t, device.Output)
	var nerr *facade.ErrNotOpenable
	_, err := facade.OpenInput(d, stream.Config{InputChannels: 1}, nil)
	if !errors.As(err, &nerr) {
		t.Fatalf("err = %v, want ErrNotOpenable for input on an output-only device", err)
	}
}
