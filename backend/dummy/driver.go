// Package dummy implements a pure Go, cgo-free backend with one input
// device and one output device (and their combination as a duplex
// device). It never touches real hardware: its stream drives its own
// software clock on a goroutine it owns, on a time.Ticker, rather than
// being driven by a native library's own callback thread the way every
// other backend in this module is. It exists so the engine, duplex and
// facade packages can be exercised without a sound card.
package dummy

import (
	"github.com/loopwire-audio/loopwire"
	"github.com/loopwire-audio/loopwire/device"
)

func init() {
	loopwire.RegisterDriver("dummy", func() (device.Driver, error) { return NewDriver(), nil })
}

// Driver is the dummy backend's entry point.
type Driver struct {
	ext *device.Selector
}

// NewDriver returns a ready-to-use dummy Driver.
func NewDriver() *Driver {
	return &Driver{ext: device.NewSelector()}
}

func (dr *Driver) DisplayName() string { return "Dummy" }

func (dr *Driver) Version() (string, error) { return "1.0.0", nil }

func (dr *Driver) Extensions() *device.Selector { return dr.ext }

func (dr *Driver) DefaultDevice(kind device.DeviceType) (device.Device, bool, error) {
	switch {
	case kind.Has(device.Duplex):
		return NewDevice("DummyDuplex", device.Duplex|device.Application|device.Default), true, nil
	case kind.Has(device.Input):
		return NewDevice("DummyInput", device.Input|device.Application|device.Default), true, nil
	case kind.Has(device.Output):
		return NewDevice("DummyOutput", device.Output|device.Application|device.Default), true, nil
	default:
		return nil, false, nil
	}
}

func (dr *Driver) ListDevices() ([]device.Device, error) {
	return []device.Device{
		NewDevice("DummyInput", device.Input|device.Application|device.Default),
		NewDevice("DummyOutput", device.Output|device.Application|device.Default),
		NewDevice("DummyDuplex", device.Duplex|device.Application),
	}, nil
}

var (
	_ device.Driver = (*Driver)(nil)
)
