package stream

import (
	"errors"
	"testing"
)

func TestValidateRequiresAtLeastOneDirection(t *testing.T) {
	if err := (Config{SampleRate: 48000}).Validate(); !errors.Is(err, ErrNoChannels) {
		t.Fatalf("Validate() = %v, want ErrNoChannels", err)
	}
	if err := (Config{SampleRate: 48000, InputChannels: 1}).Validate(); err != nil {
		t.Fatalf("Validate(input-only) = %v, want nil", err)
	}
	if err := (Config{SampleRate: 48000, OutputChannels: 2}).Validate(); err != nil {
		t.Fatalf("Validate(output-only) = %v, want nil", err)
	}
}

func TestValidateRejectsInvertedBufferBounds(t *testing.T) {
	cfg := Config{OutputChannels: 2, MinBufferSize: 1024, MaxBufferSize: 64}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected inverted buffer bounds to fail validation")
	}
}

func TestClampBufferSize(t *testing.T) {
	cases := []struct {
		name     string
		cfg      Config
		in, want int
	}{
		{"no hints", Config{}, 512, 512},
		{"min raises", Config{MinBufferSize: 1024}, 512, 1024},
		{"max lowers", Config{MaxBufferSize: 128}, 512, 128},
		{"inside range", Config{MinBufferSize: 64, MaxBufferSize: 1024}, 512, 512},
	}
	for _, tc := range cases {
		if got := tc.cfg.ClampBufferSize(tc.in); got != tc.want {
			t.Errorf("%s: ClampBufferSize(%d) = %d, want %d", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestMatchesIgnoresZeroFields(t *testing.T) {
	have := Config{SampleRate: 48000, InputChannels: 1, OutputChannels: 2}
	if !have.Matches(Config{SampleRate: 48000}) {
		t.Fatalf("zero channel counts should match anything")
	}
	if have.Matches(Config{SampleRate: 44100}) {
		t.Fatalf("mismatched sample rate should not match")
	}
	if have.Matches(Config{OutputChannels: 6}) {
		t.Fatalf("mismatched output channels should not match")
	}
}

func TestErrorKindRendering(t *testing.T) {
	err := NewError(BackendError, "open", errors.New("native failure"))
	if err.Unwrap() == nil {
		t.Fatalf("expected wrapped cause")
	}
	if err.Error() == "" {
		t.Fatalf("expected non-empty rendering")
	}
	if ConfigNotAvailable(Config{SampleRate: 1}).Kind != ConfigurationNotAvailable {
		t.Fatalf("ConfigNotAvailable kind mismatch")
	}
}
