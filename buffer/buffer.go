// Package buffer implements a planar (channel-major) audio buffer with
// zero-copy slicing and frame/channel views, plus conversion to and from
// interleaved layout.
//
// Channel c of a buffer with frames F occupies positions [c*F, (c+1)*F) of
// the backing store; index (frame i, channel c) therefore maps to offset
// c*capFrames + i, where capFrames is the stride of the owning allocation
// (not necessarily the current window's frame count, once Slice has been
// used to narrow it).
package buffer

import (
	"errors"
	"iter"
)

// Errors returned by the Buffer constructors.
var (
	ErrEmpty               = errors.New("buffer: zero-sized buffer")
	ErrInvalidChannelCount = errors.New("buffer: data length not divisible by channel count")
	ErrInvalidFrameCount   = errors.New("buffer: data length not divisible by frame count")
)

// Buffer is a planar, channel-major audio buffer. The zero value is not
// usable; construct with Zeroed, FromFn, FromInterleaved or FromPlanar.
//
// Ref and Mut are named aliases of Buffer for call sites that want to
// document intent (read-only vs. mutating use); Go has no borrow checker
// to enforce the distinction, so both are the same type. A Buffer handed
// to a stream callback as part of AudioInput/AudioOutput is a borrowed
// window valid only for the duration of that call — do not retain its
// slices past the callback that produced them.
type Buffer[T any] struct {
	data      []T // len == channels*capFrames
	capFrames int // stride between channels in data
	channels  int
	begin     int // window start, in frames, within [0, capFrames)
	end       int // window end, in frames, within [begin, capFrames]
}

// Ref is a read-only view alias of Buffer.
type Ref[T any] = Buffer[T]

// Mut is a mutable view alias of Buffer.
type Mut[T any] = Buffer[T]

// Zeroed returns a new buffer of the given shape, filled with the zero
// value of T.
func Zeroed[T any](channels, frames int) (Buffer[T], error) {
	return FromFn[T](channels, frames, func(int, int) T {
		var zero T
		return zero
	})
}

// FromFn returns a new buffer of the given shape, with element (channel,
// frame) initialized by fn.
func FromFn[T any](channels, frames int, fn func(channel, frame int) T) (Buffer[T], error) {
	if channels <= 0 || frames <= 0 {
		return Buffer[T]{}, ErrEmpty
	}
	data := make([]T, channels*frames)
	for c := range channels {
		for i := range frames {
			data[c*frames+i] = fn(c, i)
		}
	}
	return Buffer[T]{data: data, capFrames: frames, channels: channels, begin: 0, end: frames}, nil
}

// FromInterleaved builds a planar buffer from interleaved data (sample k of
// every channel adjacent, then sample k+1). len(data) must be divisible by
// channels.
func FromInterleaved[T any](data []T, channels int) (Buffer[T], error) {
	if len(data) == 0 || channels <= 0 {
		return Buffer[T]{}, ErrEmpty
	}
	if len(data)%channels != 0 {
		return Buffer[T]{}, ErrInvalidChannelCount
	}
	frames := len(data) / channels
	out := Buffer[T]{data: make([]T, len(data)), capFrames: frames, channels: channels, begin: 0, end: frames}
	for i := range frames {
		for c := range channels {
			out.data[c*frames+i] = data[i*channels+c]
		}
	}
	return out, nil
}

// FromPlanar builds a buffer from already-planar data (channel c occupies
// [c*frames, (c+1)*frames)). len(data) must be divisible by frames.
func FromPlanar[T any](data []T, frames int) (Buffer[T], error) {
	if len(data) == 0 || frames <= 0 {
		return Buffer[T]{}, ErrEmpty
	}
	if len(data)%frames != 0 {
		return Buffer[T]{}, ErrInvalidFrameCount
	}
	channels := len(data) / frames
	cp := make([]T, len(data))
	copy(cp, data)
	return Buffer[T]{data: cp, capFrames: frames, channels: channels, begin: 0, end: frames}, nil
}

// Frames returns the number of frames in the current window.
func (b Buffer[T]) Frames() int { return b.end - b.begin }

// Channels returns the number of channels.
func (b Buffer[T]) Channels() int { return b.channels }

// Len returns Frames()*Channels().
func (b Buffer[T]) Len() int { return b.Frames() * b.channels }

// IsEmpty reports whether the buffer holds zero samples.
func (b Buffer[T]) IsEmpty() bool { return b.Len() == 0 }

func (b Buffer[T]) channelOffset(c int) int { return c*b.capFrames + b.begin }

// Channel returns a contiguous, zero-copy slice over channel c of the
// current window.
func (b Buffer[T]) Channel(c int) []T {
	off := b.channelOffset(c)
	return b.data[off : off+b.Frames()]
}

// ChannelMut returns the same slice as Channel; present for API symmetry
// with the spec's channel()/channel_mut() split (Go slices are always
// mutable through either name).
func (b Buffer[T]) ChannelMut(c int) []T { return b.Channel(c) }

// GetChannelsMut returns disjoint, mutable slices for each requested
// channel index, in the order given. Returns an error if any index is out
// of range or repeated, since repeated indices would alias the same
// memory under two different slices.
func (b Buffer[T]) GetChannelsMut(indices []int) ([][]T, error) {
	seen := make(map[int]struct{}, len(indices))
	out := make([][]T, len(indices))
	for i, c := range indices {
		if c < 0 || c >= b.channels {
			return nil, errors.New("buffer: channel index out of range")
		}
		if _, dup := seen[c]; dup {
			return nil, errors.New("buffer: duplicate channel index")
		}
		seen[c] = struct{}{}
		out[i] = b.Channel(c)
	}
	return out, nil
}

// FrameView is a zero-copy reference to one column (one sample per channel)
// of a Buffer.
type FrameView[T any] struct {
	buf   *Buffer[T]
	index int // frame index relative to buf's window
}

// Get returns the sample at channel c.
func (f FrameView[T]) Get(c int) T {
	return f.buf.data[f.buf.channelOffset(c)+f.index]
}

// Set assigns the sample at channel c.
func (f FrameView[T]) Set(c int, v T) {
	f.buf.data[f.buf.channelOffset(c)+f.index] = v
}

// Frame returns a view over frame i (0 <= i < Frames()) of the window.
func (b *Buffer[T]) Frame(i int) FrameView[T] {
	if i < 0 || i >= b.Frames() {
		panic("buffer: frame index out of range")
	}
	return FrameView[T]{buf: b, index: i}
}

// FrameMut is an alias of Frame; present for API symmetry.
func (b *Buffer[T]) FrameMut(i int) FrameView[T] { return b.Frame(i) }

// Slice returns a zero-copy sub-window [begin, end) of frames. An empty
// range (begin == end) is allowed and yields a zero-frame view.
func (b Buffer[T]) Slice(begin, end int) (Buffer[T], error) {
	if begin < 0 || end < begin || end > b.Frames() {
		return Buffer[T]{}, errors.New("buffer: slice range out of bounds")
	}
	out := b
	out.end = b.begin + end
	out.begin = b.begin + begin
	return out, nil
}

// SliceMut is an alias of Slice; present for API symmetry.
func (b Buffer[T]) SliceMut(begin, end int) (Buffer[T], error) { return b.Slice(begin, end) }

// Chunks returns an iterator over consecutive, non-overlapping windows of
// size frames; the final chunk may be shorter.
func (b Buffer[T]) Chunks(size int) iter.Seq[Buffer[T]] {
	return func(yield func(Buffer[T]) bool) {
		for start := 0; start < b.Frames(); start += size {
			end := min(start+size, b.Frames())
			chunk, _ := b.Slice(start, end)
			if !yield(chunk) {
				return
			}
		}
	}
}

// ChunksExact is like Chunks but drops a trailing chunk shorter than size.
func (b Buffer[T]) ChunksExact(size int) iter.Seq[Buffer[T]] {
	return func(yield func(Buffer[T]) bool) {
		for start := 0; start+size <= b.Frames(); start += size {
			chunk, _ := b.Slice(start, start+size)
			if !yield(chunk) {
				return
			}
		}
	}
}

// Windows returns an iterator over overlapping windows of size frames,
// advancing by one frame each step. Yields nothing if the buffer is
// shorter than size.
func (b Buffer[T]) Windows(size int) iter.Seq[Buffer[T]] {
	return func(yield func(Buffer[T]) bool) {
		if size <= 0 || size > b.Frames() {
			return
		}
		for start := 0; start+size <= b.Frames(); start++ {
			win, _ := b.Slice(start, start+size)
			if !yield(win) {
				return
			}
		}
	}
}

// IterFrames returns an iterator over every frame view in the window, in
// order.
func (b *Buffer[T]) IterFrames() iter.Seq[FrameView[T]] {
	return func(yield func(FrameView[T]) bool) {
		for i := range b.Frames() {
			if !yield(b.Frame(i)) {
				return
			}
		}
	}
}

// IterChannels returns an iterator over every channel's contiguous slice,
// in order.
func (b Buffer[T]) IterChannels() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for c := range b.channels {
			if !yield(b.Channel(c)) {
				return
			}
		}
	}
}

// ResizeChannels reallocates b to hold n channels. Existing channels are
// preserved; new channels beyond the old count repeat the old channels,
// wrapping modulo the old channel count, so widening a mono buffer to
// stereo duplicates its one channel rather than introducing silence.
// Resizing a window resizes only the window's frames, detaching it from
// the original allocation.
func (b *Buffer[T]) ResizeChannels(n int) error {
	if n <= 0 {
		return ErrEmpty
	}
	old := *b
	frames := old.Frames()
	next, err := FromFn[T](n, frames, func(c, i int) T {
		return old.data[old.channelOffset(c%old.channels)+i]
	})
	if err != nil {
		return err
	}
	*b = next
	return nil
}

// ResizeFrames reallocates b to hold n frames per channel. The first
// min(old, new) frames of each channel are preserved; frames beyond the
// old count are zero.
func (b *Buffer[T]) ResizeFrames(n int) error {
	if n <= 0 {
		return ErrEmpty
	}
	old := *b
	keep := min(old.Frames(), n)
	next, err := FromFn[T](old.channels, n, func(c, i int) T {
		if i < keep {
			return old.data[old.channelOffset(c)+i]
		}
		var zero T
		return zero
	})
	if err != nil {
		return err
	}
	*b = next
	return nil
}

// CopyToInterleaved writes the window's samples into out in interleaved
// order. out must be at least Len() long.
func (b Buffer[T]) CopyToInterleaved(out []T) error {
	if len(out) < b.Len() {
		return errors.New("buffer: destination too short")
	}
	frames := b.Frames()
	for i := range frames {
		for c := range b.channels {
			out[i*b.channels+c] = b.data[b.channelOffset(c)+i]
		}
	}
	return nil
}

// CopyFromInterleaved overwrites the window's samples from src, which is
// laid out in interleaved order and must be at least Len() long.
func (b Buffer[T]) CopyFromInterleaved(src []T) error {
	if len(src) < b.Len() {
		return errors.New("buffer: source too short")
	}
	frames := b.Frames()
	for i := range frames {
		for c := range b.channels {
			b.data[b.channelOffset(c)+i] = src[i*b.channels+c]
		}
	}
	return nil
}
