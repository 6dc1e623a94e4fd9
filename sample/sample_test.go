package sample_test

import (
	"math"
	"testing"

	"github.com/loopwire-audio/loopwire/sample"
)

func TestSignedRoundTrip(t *testing.T) {
	got := sample.FromF32Signed[int16](sample.ToF32Signed(int16(math.MaxInt16)))
	if got != math.MaxInt16 {
		t.Fatalf("got %d, want %d", got, math.MaxInt16)
	}
}

func TestZeroIsZero(t *testing.T) {
	if sample.ToF32Signed(int16(0)) != 0 {
		t.Fatalf("expected zero to convert to 0.0")
	}
}

func TestUnsignedBounds(t *testing.T) {
	if got := sample.FromF32Unsigned[uint8](-1.0); got != 0 {
		t.Fatalf("FromF32Unsigned(-1.0) = %d, want 0", got)
	}
	if got := sample.FromF32Unsigned[uint8](1.0); got != 255 {
		t.Fatalf("FromF32Unsigned(1.0) = %d, want 255", got)
	}
}

func TestInt24RoundTrip(t *testing.T) {
	var i sample.Int24
	i.Set(-12345)
	if got := i.Get(); got != -12345 {
		t.Fatalf("got %d, want -12345", got)
	}
}

func TestSwapBytesInvolution(t *testing.T) {
	if got := sample.SwapBytes16(sample.SwapBytes16(0x1234)); got != 0x1234 {
		t.Fatalf("double swap16 = %#x, want identity", got)
	}
	if got := sample.SwapBytes32(0x12345678); got != 0x78563412 {
		t.Fatalf("swap32 = %#x, want 0x78563412", got)
	}
	var i sample.Int24
	i.Set(0x123456)
	if got := i.Swapped().Swapped(); got != i {
		t.Fatalf("double swap24 = %v, want identity %v", got, i)
	}
}

func TestRMSOfSilenceIsZero(t *testing.T) {
	if got := sample.RMS(make([]float32, 128)); got != 0 {
		t.Fatalf("rms of silence = %v, want 0", got)
	}
}

func TestRMSOfFullScaleSquareIsOne(t *testing.T) {
	samples := make([]float32, 8)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = 1
		} else {
			samples[i] = -1
		}
	}
	if got := sample.RMS(samples); math.Abs(float64(got)-1) > 1e-6 {
		t.Fatalf("rms = %v, want 1", got)
	}
}
