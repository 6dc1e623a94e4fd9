//go:build windows

// Package asio drives the Audio Stream Input/Output backend through
// rtaudio. Its Driver, Device and stream constructors are thin re-exports
// of internal/rtbackend bound to rtaudio's ASIO API constant; the real
// device/stream/engine logic lives there, shared with every other
// rtaudio-backed platform package.
//
// ASIO drivers expose only one stream per device, unlike WASAPI or
// CoreAudio, which happily hand out independent input and output streams
// on the same device. CreateInputStream, CreateOutputStream and
// CreateDuplexStream here check rtbackend.Driver's open-stream bookkeeping
// first and refuse a second stream with stream.MultipleStreams instead of
// letting the native open fail in some driver-specific way.
package asio

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
	loopwire.RegisterDriver("asio", func() (device.Driver, error) { return NewDriver() })
}

// NewDriver binds the ASIO backend.
func NewDriver() (*Driver, error) {
	return rtbackend.NewDriver(nativertaudio.APIAsio, "ASIO")
}

func checkSingleStream(d *Device) error {
	if d.Driver().HasOpenStream(d) {
		return stream.NewError(stream.MultipleStreams, "ASIO permits only one stream per device", nil)
	}
	return nil
}

func CreateInputStream[Callback stream.InputCallback](d *Device, cfg stream.Config, cb Callback) (*rtbackend.InputStream[Callback], error) {
	if err := checkSingleStream(d); err != nil {
		return nil, err
	}
	return rtbackend.CreateInputStream(d, cfg, cb)
}

func CreateOutputStream[Callback stream.OutputCallback](d *Device, cfg stream.Config, cb Callback) (*rtbackend.OutputStream[Callback], error) {
	if err := checkSingleStream(d); err != nil {
		return nil, err
	}
	return rtbackend.CreateOutputStream(d, cfg, cb)
}

func CreateDuplexStream[Callback stream.DuplexCallback](d *Device, cfg stream.Config, cb Callback) (*rtbackend.DuplexStream[Callback], error) {
	if err := checkSingleStream(d); err != nil {
		return nil, err
	}
	return rtbackend.CreateDuplexStream(d, cfg, cb)
}

var _ device.Driver = (*Driver)(nil)
