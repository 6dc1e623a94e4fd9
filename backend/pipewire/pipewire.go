//go:build linux

// Package pipewire drives PipeWire-managed audio devices through rtaudio.
// rtaudio has no dedicated PipeWire API constant; PipeWire's PulseAudio
// compatibility layer is what every PulseAudio client, including rtaudio's
// RTAUDIO_API_LINUX_PULSE path, actually talks to on a PipeWire system, so
// this package binds that constant as a documented stand-in rather than
// speaking the native PipeWire client protocol directly, which would be a
// second native collaborator this module does not otherwise depend on.
package pipewire

import (
	"github.com/loopwire-audio/loopwire"
	"github.com/loopwire-audio/loopwire/device"
	"github.com/loopwire-audio/loopwire/internal/nativertaudio"
	"github.com/loopwire-audio/loopwire/internal/rtbackend"
	"github.com/loopwire-audio/loopwire/stream"
)

type (
	Driver = rtbackend.Driver
	Device = rtbackend.Device
)

func init() {
	loopwire.RegisterDriver("pipewire", func() (device.Driver, error) { return NewDriver() })
}

// NewDriver binds the PipeWire (via its PulseAudio compatibility layer)
// backend.
func NewDriver() (*Driver, error) {
	return rtbackend.NewDriver(nativertaudio.APIPulse, "PipeWire")
}

func CreateInputStream[Callback stream.InputCallback](d *Device, cfg stream.Config, cb Callback) (*rtbackend.InputStream[Callback], error) {
	return rtbackend.CreateInputStream(d, cfg, cb)
}

func CreateOutputStream[Callback stream.OutputCallback](d *Device, cfg stream.Config, cb Callback) (*rtbackend.OutputStream[Callback], error) {
	return rtbackend.CreateOutputStream(d, cfg, cb)
}

func CreateDuplexStream[Callback stream.DuplexCallback](d *Device, cfg stream.Config, cb Callback) (*rtbackend.DuplexStream[Callback], error) {
	return rtbackend.CreateDuplexStream(d, cfg, cb)
}

var _ device.Driver = (*Driver)(nil)
