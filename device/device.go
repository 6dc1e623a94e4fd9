package device

import (
	"iter"

	"github.com/loopwire-audio/loopwire/stream"
)

// Device is the capability surface common to every device, regardless of
// direction. Backend-specific capabilities (a native device id, a vendor
// config) are exposed through Extensions instead of widening this
// interface.
type Device interface {
	// Name is a human-readable device name, not necessarily unique.
	Name() string
	// Type reports what the device can do and how it was discovered.
	Type() DeviceType
	// IsConfigSupported reports whether cfg can be opened on this device
	// without modification.
	IsConfigSupported(cfg stream.Config) bool
	// EnumerateConfigurations lists the configurations the device
	// reports supporting. ok is false if the backend cannot enumerate
	// configurations up front and a caller must try DefaultConfig or a
	// speculative CreateStream instead.
	EnumerateConfigurations() (configs []stream.Config, ok bool)
	// DefaultConfig returns the configuration the backend recommends for
	// this device.
	DefaultConfig() (stream.Config, error)
	// Extensions exposes backend-specific capabilities.
	Extensions() *Selector
}

// InputDevice is a Device that can capture audio.
type InputDevice interface {
	Device
	// InputChannelMap iterates the device's input channels.
	InputChannelMap() iter.Seq[Channel]
	// DefaultInputConfig is DefaultConfig specialized for the input
	// direction, for devices whose input and output defaults differ.
	DefaultInputConfig() (stream.Config, error)
}

// OutputDevice is a Device that can play back audio.
type OutputDevice interface {
	Device
	// OutputChannelMap iterates the device's output channels.
	OutputChannelMap() iter.Seq[Channel]
	// DefaultOutputConfig is DefaultConfig specialized for the output
	// direction.
	DefaultOutputConfig() (stream.Config, error)
}

// DuplexDevice is a Device that presents a single synchronized input+output
// pair, as opposed to two independently clocked half-duplex devices bridged
// by the duplex package.
type DuplexDevice interface {
	InputDevice
	OutputDevice
}

// CreateInputStream, CreateOutputStream and CreateDuplexStream are not
// methods on these interfaces: a Go interface method cannot introduce a
// type parameter of its own, and each stream constructor is generic over
// the caller-supplied callback type. Every backend package instead exposes
// concrete generic functions of this same shape, operating on its own
// concrete device type; see backend/dummy for the reference shape. The
// facade package provides a callback-type-erased alternative for callers
// that need to select a backend at runtime rather than at compile time.
