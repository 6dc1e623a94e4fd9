// Package duplex composes two independently opened half-duplex streams
// (one input, one output, each possibly on a different device and a
// different native clock) into a single synchronized duplex callback. A
// lock-free single-producer/single-consumer ring buffer carries samples
// from the input stream's callback thread to the output stream's callback
// thread, and an atomically published sample rate lets the input side
// resample on the fly to match whatever rate the output side is actually
// running at.
package duplex

import "sync/atomic"

// RingBuffer is a lock-free single-producer/single-consumer queue of
// float32 samples, sized in power-of-two slots so index wraparound is a
// mask instead of a modulo. It is the Go analogue of the rtrb crate the
// original implementation uses for this same purpose: Push runs on the
// input callback thread, Pop on the output callback thread, and neither
// blocks or allocates.
type RingBuffer struct {
	buf  []float32
	mask uint64
	head atomic.Uint64 // next slot to write
	tail atomic.Uint64 // next slot to read
}

// NewRingBuffer returns a RingBuffer with capacity for at least minSlots
// samples, rounded up to the next power of two.
func NewRingBuffer(minSlots int) *RingBuffer {
	if minSlots < 1 {
		minSlots = 1
	}
	cap := 1
	for cap < minSlots {
		cap <<= 1
	}
	return &RingBuffer{buf: make([]float32, cap), mask: uint64(cap - 1)}
}

// Capacity returns the number of slots in the ring.
func (r *RingBuffer) Capacity() int { return len(r.buf) }

// Len returns the number of unread samples currently queued.
func (r *RingBuffer) Len() int {
	return int(r.head.Load() - r.tail.Load())
}

// Free returns the number of samples that can currently be pushed without
// overwriting unread data.
func (r *RingBuffer) Free() int { return r.Capacity() - r.Len() }

// Push writes v to the ring. It reports false without writing if the ring
// is full, rather than blocking or overwriting unread data.
func (r *RingBuffer) Push(v float32) bool {
	head := r.head.Load()
	if head-r.tail.Load() >= uint64(len(r.buf)) {
		return false
	}
	r.buf[head&r.mask] = v
	r.head.Store(head + 1)
	return true
}

// Pop reads one sample from the ring. It returns 0, false if the ring is
// empty, rather than blocking.
func (r *RingBuffer) Pop() (float32, bool) {
	tail := r.tail.Load()
	if r.head.Load() == tail {
		return 0, false
	}
	v := r.buf[tail&r.mask]
	r.tail.Store(tail + 1)
	return v, true
}

// PopOrZero reads one sample, returning 0 if none is available. Used on
// the output callback thread, where returning silence on underrun is
// preferable to stalling the audio callback.
func (r *RingBuffer) PopOrZero() float32 {
	v, _ := r.Pop()
	return v
}
