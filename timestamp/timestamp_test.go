package timestamp_test

import (
	"testing"
	"time"

	"github.com/loopwire-audio/loopwire/timestamp"
)

func TestArithmeticFrames(t *testing.T) {
	ts := timestamp.New(48000.0)
	ts = ts.AddFrames(48)
	if got := ts.AsDuration(); got != time.Millisecond {
		t.Fatalf("as duration = %v, want 1ms", got)
	}
}

func TestArithmeticDuration(t *testing.T) {
	ts := timestamp.FromCount(48000.0, 48)
	ts = ts.AddDuration(100 * time.Millisecond)
	if ts.Counter != 4848 {
		t.Fatalf("counter = %d, want 4848", ts.Counter)
	}
}

func TestMonotonicity(t *testing.T) {
	ts := timestamp.New(44100.0)
	for n := range uint64(10) {
		next := ts.AddFrames(n)
		if next.Counter < ts.Counter {
			t.Fatalf("counter decreased: %d -> %d", ts.Counter, next.Counter)
		}
		ts = next
	}
}

func TestAsSecondsMatchesCounterOverSampleRate(t *testing.T) {
	ts := timestamp.FromCount(48000.0, 96000)
	if got, want := ts.AsSeconds(), 2.0; got != want {
		t.Fatalf("as seconds = %v, want %v", got, want)
	}
}

func TestFromDurationTruncates(t *testing.T) {
	// 1500 samples at 48kHz is 31250000ns + a fraction of a sample; the
	// fractional remainder must be truncated away, not rounded.
	d := time.Duration(float64(1500)/48000.0*float64(time.Second)) + 3*time.Nanosecond
	ts := timestamp.FromDuration(48000.0, d)
	if ts.Counter != 1500 {
		t.Fatalf("counter = %d, want 1500", ts.Counter)
	}
}
