package engine_test

import (
	"errors"
	"testing"

	"github.com/loopwire-audio/loopwire/engine"
	"github.com/loopwire-audio/loopwire/stream"
)

type fakeCallback struct{ prepared bool }

func (f *fakeCallback) Prepare(stream.ResolvedConfig) error { f.prepared = true; return nil }

func newEngine(t *testing.T, ops engine.NativeOps) *engine.Engine[*fakeCallback] {
	t.Helper()
	cb := &fakeCallback{}
	cfg := stream.ResolvedConfig{SampleRate: 48000, OutputChannels: 2, MaxFrameCount: 256}
	return engine.New(cb, cfg, ops, nil)
}

func noopOps() (engine.NativeOps, *int, *int, *int) {
	starts, stops, closes := 0, 0, 0
	return engine.NativeOps{
		Start: func() error { starts++; return nil },
		Stop:  func() error { stops++; return nil },
		Close: func() error { closes++; return nil },
	}, &starts, &stops, &closes
}

func TestStartRunStop(t *testing.T) {
	ops, starts, stops, _ := noopOps()
	e := newEngine(t, ops)

	if e.State() != engine.Uninitialized {
		t.Fatalf("initial state = %v, want Uninitialized", e.State())
	}
	if err := e.Start(nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if e.State() != engine.Running {
		t.Fatalf("state after start = %v, want Running", e.State())
	}
	if *starts != 1 {
		t.Fatalf("native start called %d times, want 1", *starts)
	}
	if err := e.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if e.State() != engine.Uninitialized {
		t.Fatalf("state after stop = %v, want Uninitialized", e.State())
	}
	if *stops != 1 {
		t.Fatalf("native stop called %d times, want 1", *stops)
	}
}

func TestStopWhileUninitializedIsNoop(t *testing.T) {
	ops, _, stops, _ := noopOps()
	e := newEngine(t, ops)
	if err := e.Stop(); err != nil {
		t.Fatalf("Stop on uninitialized: %v", err)
	}
	if *stops != 0 {
		t.Fatalf("native stop called, want untouched")
	}
}

func TestPrepareFailureLeavesUninitialized(t *testing.T) {
	ops, starts, _, _ := noopOps()
	e := newEngine(t, ops)
	wantErr := errors.New("boom")
	if err := e.Start(func() error { return wantErr }); err == nil {
		t.Fatalf("expected prepare failure to propagate")
	}
	if e.State() != engine.Uninitialized {
		t.Fatalf("state after failed prepare = %v, want Uninitialized", e.State())
	}
	if *starts != 0 {
		t.Fatalf("native start should not run when prepare fails")
	}
}

func TestEjectStopsAndClosesThenReturnsCallback(t *testing.T) {
	ops, _, stops, closes := noopOps()
	e := newEngine(t, ops)
	if err := e.Start(nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cb, err := e.Eject()
	if err != nil {
		t.Fatalf("Eject: %v", err)
	}
	if cb == nil {
		t.Fatalf("expected non-nil callback back from Eject")
	}
	if *stops != 1 || *closes != 1 {
		t.Fatalf("stop/close calls = %d/%d, want 1/1", *stops, *closes)
	}
	if e.State() != engine.Terminated {
		t.Fatalf("state after eject = %v, want Terminated", e.State())
	}
	if !e.Ejecting() {
		t.Fatalf("expected Ejecting() to report true after Eject")
	}
	if _, err := e.Eject(); err == nil {
		t.Fatalf("expected second Eject to fail")
	}
}

func TestRecordXrunIncrementsCounter(t *testing.T) {
	ops, _, _, _ := noopOps()
	e := newEngine(t, ops)
	e.RecordXrun()
	e.RecordXrun()
	if got, want := e.Xruns(), uint64(2); got != want {
		t.Fatalf("xruns = %d, want %d", got, want)
	}
}

func TestAllocateScratchReturnsAddressableBuffer(t *testing.T) {
	ops, _, _, _ := noopOps()
	e := newEngine(t, ops)
	buf, err := e.AllocateScratch("in", 2, 128)
	if err != nil {
		t.Fatalf("AllocateScratch: %v", err)
	}
	if buf.Channels() != 2 || buf.Frames() != 128 {
		t.Fatalf("scratch shape = %dx%d, want 2x128", buf.Channels(), buf.Frames())
	}
	if e.ScratchInput() != buf {
		t.Fatalf("ScratchInput did not return the allocated buffer")
	}
}
