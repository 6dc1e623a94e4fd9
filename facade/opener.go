package facade

import (
	"github.com/loopwire-audio/loopwire/device"
	"github.com/loopwire-audio/loopwire/stream"
)

// InputOpener, OutputOpener and DuplexOpener are the capability types a
// backend registers into its devices' extension Selector so that a caller
// holding only a device.Device — typically one picked at runtime out of
// ListDrivers — can still open a stream on it. The backend's generic
// stream constructors cannot appear on the Device interface itself (an
// interface method cannot introduce its own type parameter), so each
// backend boxes them at the callback interface types here instead.
type (
	InputOpener  func(cfg stream.Config, cb stream.InputCallback) (AnyStreamHandle, error)
	OutputOpener func(cfg stream.Config, cb stream.OutputCallback) (AnyStreamHandle, error)
	DuplexOpener func(cfg stream.Config, cb stream.DuplexCallback) (AnyStreamHandle, error)
)

// ErrNotOpenable reports that a device advertises no opener capability for
// the requested direction.
type ErrNotOpenable struct {
	Direction string
	Device    string
}

func (e *ErrNotOpenable) Error() string {
	return "facade: device " + e.Device + " advertises no " + e.Direction + " opener"
}

// OpenInput opens a capture stream on d through its registered
// InputOpener capability. Recover the concrete callback with EjectAs.
func OpenInput(d device.Device, cfg stream.Config, cb stream.InputCallback) (AnyStreamHandle, error) {
	open, ok := device.Lookup[InputOpener](d.Extensions())
	if !ok {
		return nil, &ErrNotOpenable{Direction: "input", Device: d.Name()}
	}
	return open(cfg, cb)
}

// OpenOutput opens a playback stream on d through its registered
// OutputOpener capability.
func OpenOutput(d device.Device, cfg stream.Config, cb stream.OutputCallback) (AnyStreamHandle, error) {
	open, ok := device.Lookup[OutputOpener](d.Extensions())
	if !ok {
		return nil, &ErrNotOpenable{Direction: "output", Device: d.Name()}
	}
	return open(cfg, cb)
}

// OpenDuplex opens a synchronized duplex stream on d through its
// registered DuplexOpener capability. Devices that cannot duplex natively
// register no DuplexOpener; bridge two half-duplex devices with the duplex
// package instead.
func OpenDuplex(d device.Device, cfg stream.Config, cb stream.DuplexCallback) (AnyStreamHandle, error) {
	open, ok := device.Lookup[DuplexOpener](d.Extensions())
	if !ok {
		return nil, &ErrNotOpenable{Direction: "duplex", Device: d.Name()}
	}
	return open(cfg, cb)
}
