package rtbackend

import (
	"iter"

	"github.com/loopwire-audio/loopwire/device"
	"github.com/loopwire-audio/loopwire/facade"
	"github.com/loopwire-audio/loopwire/internal/nativertaudio"
	"github.com/loopwire-audio/loopwire/stream"
)

// Device is a single native device as reported by rtaudio.
type Device struct {
	driver *Driver
	info   nativertaudio.DeviceInfo
	ext    *device.Selector
}

func newDevice(driver *Driver, info nativertaudio.DeviceInfo) *Device {
	d := &Device{driver: driver, info: info, ext: device.NewSelector()}
	device.Provide(d.ext, info)
	if info.InputChannels > 0 {
		device.Provide(d.ext, facade.InputOpener(func(cfg stream.Config, cb stream.InputCallback) (facade.AnyStreamHandle, error) {
			h, err := CreateInputStream(d, cfg, cb)
			if err != nil {
				return nil, err
			}
			return facade.Box[stream.InputCallback](h), nil
		}))
	}
	if info.OutputChannels > 0 {
		device.Provide(d.ext, facade.OutputOpener(func(cfg stream.Config, cb stream.OutputCallback) (facade.AnyStreamHandle, error) {
			h, err := CreateOutputStream(d, cfg, cb)
			if err != nil {
				return nil, err
			}
			return facade.Box[stream.OutputCallback](h), nil
		}))
	}
	if info.InputChannels > 0 && info.OutputChannels > 0 {
		device.Provide(d.ext, facade.DuplexOpener(func(cfg stream.Config, cb stream.DuplexCallback) (facade.AnyStreamHandle, error) {
			h, err := CreateDuplexStream(d, cfg, cb)
			if err != nil {
				return nil, err
			}
			return facade.Box[stream.DuplexCallback](h), nil
		}))
	}
	return d
}

// Driver returns the backend driver that enumerated this device, so a
// caller holding only a *Device can still reach driver-level operations
// such as HasOpenStream.
func (d *Device) Driver() *Driver { return d.driver }

func (d *Device) Name() string { return d.info.Name }

func (d *Device) Type() device.DeviceType {
	var t device.DeviceType
	if d.info.InputChannels > 0 {
		t |= device.Input
	}
	if d.info.OutputChannels > 0 {
		t |= device.Output
	}
	t |= device.Physical
	if d.info.IsDefaultInput || d.info.IsDefaultOutput {
		t |= device.Default
	}
	return t
}

func (d *Device) Extensions() *device.Selector { return d.ext }

func (d *Device) IsConfigSupported(cfg stream.Config) bool {
	if cfg.InputChannels > d.info.InputChannels || cfg.OutputChannels > d.info.OutputChannels {
		return false
	}
	if cfg.InputChannels < 0 || cfg.OutputChannels < 0 {
		return false
	}
	if cfg.SampleRate == 0 {
		return true
	}
	for _, rate := range d.info.SampleRates {
		if rate == cfg.SampleRate {
			return true
		}
	}
	return false
}

func (d *Device) EnumerateConfigurations() ([]stream.Config, bool) {
	if len(d.info.SampleRates) == 0 {
		return nil, false
	}
	configs := make([]stream.Config, 0, len(d.info.SampleRates))
	for _, rate := range d.info.SampleRates {
		configs = append(configs, stream.Config{
			SampleRate:     rate,
			InputChannels:  d.info.InputChannels,
			OutputChannels: d.info.OutputChannels,
			Format:         stream.FormatF32,
		})
	}
	return configs, true
}

func (d *Device) DefaultConfig() (stream.Config, error) {
	rate := d.info.PreferredSampleRate
	if rate == 0 {
		rate = 48000
	}
	return stream.Config{
		SampleRate:     rate,
		InputChannels:  d.info.InputChannels,
		OutputChannels: d.info.OutputChannels,
		Format:         stream.FormatF32,
	}, nil
}

func (d *Device) DefaultInputConfig() (stream.Config, error) {
	cfg, err := d.DefaultConfig()
	cfg.OutputChannels = 0
	return cfg, err
}

func (d *Device) DefaultOutputConfig() (stream.Config, error) {
	cfg, err := d.DefaultConfig()
	cfg.InputChannels = 0
	return cfg, err
}

func (d *Device) InputChannelMap() iter.Seq[device.Channel] {
	return func(yield func(device.Channel) bool) {
		for i := range d.info.InputChannels {
			if !yield(device.Channel{Index: i}) {
				return
			}
		}
	}
}

func (d *Device) OutputChannelMap() iter.Seq[device.Channel] {
	return func(yield func(device.Channel) bool) {
		for i := range d.info.OutputChannels {
			if !yield(device.Channel{Index: i}) {
				return
			}
		}
	}
}

var (
	_ device.InputDevice  = (*Device)(nil)
	_ device.OutputDevice = (*Device)(nil)
	_ device.DuplexDevice = (*Device)(nil)
)
