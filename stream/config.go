// Package stream defines the configuration, callback and handle contracts
// shared by every backend: a Config a caller requests, a ResolvedConfig a
// backend actually opened, and the callback interfaces a backend drives
// from its audio thread.
package stream

import (
	"errors"

	"github.com/loopwire-audio/loopwire/channelmap"
)

// SampleFormat names a wire sample representation a backend can negotiate.
type SampleFormat int

const (
	FormatI16 SampleFormat = iota
	FormatI24
	FormatI32
	FormatF32
	FormatF64
)

func (f SampleFormat) String() string {
	switch f {
	case FormatI16:
		return "i16"
	case FormatI24:
		return "i24"
	case FormatI32:
		return "i32"
	case FormatF32:
		return "f32"
	case FormatF64:
		return "f64"
	default:
		return "unknown"
	}
}

// ErrNoChannels is returned by Config.Validate when neither direction
// requests any channels.
var ErrNoChannels = errors.New("stream: config requests neither input nor output channels")

// Config is a stream configuration requested by a caller, or enumerated as
// supported by a device. A zero SampleRate means "let the backend pick its
// default"; the channel counts are per direction, and at least one of them
// must be positive for the config to open a stream. MinBufferSize and
// MaxBufferSize are hints, in frames per channel, bounding the buffer size
// the backend negotiates; zero leaves the corresponding bound open.
type Config struct {
	SampleRate     float64
	InputChannels  int
	OutputChannels int
	Format         SampleFormat
	MinBufferSize  int
	MaxBufferSize  int
	ChannelMap     channelmap.Bitset
	ExclusiveMode  bool
}

// Validate reports whether c can describe a stream at all. Device-specific
// limits (supported rates, channel counts) are the device's
// IsConfigSupported to judge; Validate only enforces the invariants every
// backend shares.
func (c Config) Validate() error {
	if c.InputChannels <= 0 && c.OutputChannels <= 0 {
		return ErrNoChannels
	}
	if c.InputChannels < 0 || c.OutputChannels < 0 {
		return errors.New("stream: negative channel count")
	}
	if c.SampleRate < 0 {
		return errors.New("stream: negative sample rate")
	}
	if c.MinBufferSize < 0 || c.MaxBufferSize < 0 {
		return errors.New("stream: negative buffer size bound")
	}
	if c.MinBufferSize > 0 && c.MaxBufferSize > 0 && c.MinBufferSize > c.MaxBufferSize {
		return errors.New("stream: min buffer size exceeds max")
	}
	return nil
}

// ClampBufferSize applies c's buffer-size hints to a backend's preferred
// frame count.
func (c Config) ClampBufferSize(frames int) int {
	if c.MinBufferSize > 0 && frames < c.MinBufferSize {
		frames = c.MinBufferSize
	}
	if c.MaxBufferSize > 0 && frames > c.MaxBufferSize {
		frames = c.MaxBufferSize
	}
	return frames
}

// ResolvedConfig is the configuration a backend actually opened, which may
// differ from the Config that was requested (a backend may widen the
// buffer, or fall back to a supported sample rate). It is immutable for
// the life of the stream and is handed to the callback inside every
// CallbackContext. MaxFrameCount is the upper bound on the frames a single
// callback invocation may see.
type ResolvedConfig struct {
	SampleRate     float64
	InputChannels  int
	OutputChannels int
	Format         SampleFormat
	MaxFrameCount  int
	ExclusiveMode  bool
}

// Matches reports whether have satisfies want: every non-zero field of want
// must equal the corresponding field of have.
func (have Config) Matches(want Config) bool {
	if want.SampleRate != 0 && want.SampleRate != have.SampleRate {
		return false
	}
	if want.InputChannels != 0 && want.InputChannels != have.InputChannels {
		return false
	}
	if want.OutputChannels != 0 && want.OutputChannels != have.OutputChannels {
		return false
	}
	return true
}
