//go:build linux

// Package alsa drives the Advanced Linux Sound Architecture backend
// through rtaudio. Its Driver, Device and stream constructors are thin
// re-exports of internal/rtbackend bound to rtaudio's ALSA API constant;
// the real device/stream/engine logic lives there, shared with every
// other rtaudio-backed platform package.
package alsa

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
	loopwire.RegisterDriver("alsa", func() (device.Driver, error) { return NewDriver() })
}

// NewDriver binds the ALSA backend.
func NewDriver() (*Driver, error) {
	return rtbackend.NewDriver(nativertaudio.APIAlsa, "ALSA")
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
