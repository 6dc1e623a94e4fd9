// Package timestamp provides a monotonic, sample-rate-aware clock used to
// align audio callbacks across streams.
package timestamp

import "time"

// Timestamp is a sample counter bound to a sample rate. Arithmetic on a
// Timestamp never decreases the counter; truncation toward zero is
// deliberate everywhere a fractional sample count would otherwise appear,
// since only whole samples are tracked.
type Timestamp struct {
	// Counter is the number of samples counted so far.
	Counter uint64
	// SampleRate is the sample rate, in Hz, associated with Counter.
	SampleRate float64
}

// New returns a zeroed Timestamp at the given sample rate.
func New(sampleRate float64) Timestamp {
	return Timestamp{SampleRate: sampleRate}
}

// FromCount returns a Timestamp at the given sample rate and sample count.
func FromCount(sampleRate float64, counter uint64) Timestamp {
	return Timestamp{SampleRate: sampleRate, Counter: counter}
}

// FromSeconds returns the Timestamp whose counter most closely matches the
// given number of seconds at the given sample rate, truncated toward zero.
func FromSeconds(sampleRate, seconds float64) Timestamp {
	return Timestamp{SampleRate: sampleRate, Counter: uint64(sampleRate * seconds)}
}

// FromDuration returns the Timestamp whose counter most closely matches the
// given duration at the given sample rate, truncated toward zero.
func FromDuration(sampleRate float64, d time.Duration) Timestamp {
	return FromSeconds(sampleRate, d.Seconds())
}

// AddFrames returns a new Timestamp advanced by the given number of whole
// frames.
func (t Timestamp) AddFrames(frames uint64) Timestamp {
	t.Counter += frames
	return t
}

// AddDuration returns a new Timestamp advanced by the number of whole
// samples the given duration represents at t's sample rate. The conversion
// truncates toward zero (sample-granular), so repeated small additions can
// lose a fractional sample each time; this is deliberate.
func (t Timestamp) AddDuration(d time.Duration) Timestamp {
	samples := d.Seconds() * t.SampleRate
	t.Counter += uint64(samples)
	return t
}

// AsSeconds returns the duration represented by t, in seconds.
func (t Timestamp) AsSeconds() float64 {
	return float64(t.Counter) / t.SampleRate
}

// AsDuration returns the duration represented by t.
func (t Timestamp) AsDuration() time.Duration {
	return time.Duration(t.AsSeconds() * float64(time.Second))
}
