package facade_test

import (
	"testing"

	"github.com/loopwire-audio/loopwire/facade"
	"github.com/loopwire-audio/loopwire/stream"
)

type fakeCallback struct{ id int }

type fakeHandle struct {
	cfg      stream.ResolvedConfig
	callback *fakeCallback
	started  bool
}

func (h *fakeHandle) Start() error                      { h.started = true; return nil }
func (h *fakeHandle) Stop() error                        { h.started = false; return nil }
func (h *fakeHandle) Config() stream.ResolvedConfig      { return h.cfg }
func (h *fakeHandle) Eject() (*fakeCallback, error)      { return h.callback, nil }

func TestBoxAndEjectAsRoundTrip(t *testing.T) {
	handle := &fakeHandle{callback: &fakeCallback{id: 7}}
	boxed := facade.Box[*fakeCallback](handle)

	if err := boxed.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !handle.started {
		t.Fatalf("expected underlying handle to start")
	}

	cb, err := facade.EjectAs[*fakeCallback](boxed)
	if err != nil {
		t.Fatalf("EjectAs: %v", err)
	}
	if cb.id != 7 {
		t.Fatalf("id = %d, want 7", cb.id)
	}
}

type otherCallback struct{}

func TestEjectAsMismatchedTypeReturnsError(t *testing.T) {
	handle := &fakeHandle{callback: &fakeCallback{id: 1}}
	boxed := facade.Box[*fakeCallback](handle)
	if _, err := facade.EjectAs[*otherCallback](boxed); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}
