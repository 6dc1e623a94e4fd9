package channelmap_test

import (
	"testing"

	"github.com/loopwire-audio/loopwire/channelmap"
)

func TestBitsetRoundTrip(t *testing.T) {
	var m channelmap.ChannelMap32
	for i := range m.Capacity() {
		m.Set(i, true)
		if !m.Get(i) {
			t.Fatalf("index %d not set after Set(true)", i)
		}
	}
	if got, want := m.Count(), 32; got != want {
		t.Fatalf("count = %d, want %d", got, want)
	}
}

func TestWithIndexFluent(t *testing.T) {
	m := channelmap.ChannelMap32(0).WithIndex(0, true).WithIndex(3, true)
	if got, want := channelmap.Indices(&m), []int{0, 3}; !equal(got, want) {
		t.Fatalf("indices = %v, want %v", got, want)
	}
}

func TestWithIndexAcrossWidths(t *testing.T) {
	if got := channelmap.ChannelMap8(0).WithIndex(7, true); !got.Get(7) {
		t.Fatalf("ChannelMap8.WithIndex(7) not set")
	}
	if got := channelmap.ChannelMap16(0).WithIndex(15, true); !got.Get(15) {
		t.Fatalf("ChannelMap16.WithIndex(15) not set")
	}
	if got := channelmap.ChannelMap64(0).WithIndex(63, true); !got.Get(63) {
		t.Fatalf("ChannelMap64.WithIndex(63) not set")
	}
}

func TestConcatCapacityAndLocate(t *testing.T) {
	var a, b channelmap.ChannelMap8
	c := channelmap.Concat{&a, &b}
	if got, want := c.Capacity(), 16; got != want {
		t.Fatalf("capacity = %d, want %d", got, want)
	}
	c.Set(9, true)
	if !b.Get(1) {
		t.Fatalf("expected second bitset index 1 to be set")
	}
	if got, want := c.Count(), 1; got != want {
		t.Fatalf("count = %d, want %d", got, want)
	}
}

func TestOutOfRangeGetIsFalse(t *testing.T) {
	var m channelmap.ChannelMap32
	if m.Get(-1) || m.Get(32) {
		t.Fatalf("expected out-of-range indices to report false")
	}
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
