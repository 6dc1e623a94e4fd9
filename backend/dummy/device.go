package dummy

import (
	"iter"

	"github.com/loopwire-audio/loopwire/device"
	"github.com/loopwire-audio/loopwire/facade"
	"github.com/loopwire-audio/loopwire/stream"
)

// DefaultChannels and DefaultSampleRate are used when a caller requests a
// Config leaving SampleRate or the channel counts unset. MinSampleRate and
// MaxSampleRate bound what the dummy device accepts; a rate outside that
// range fails IsConfigSupported the way a real driver would reject it.
const (
	DefaultChannels   = 2
	DefaultSampleRate = 48000.0
	DefaultBufferSize = 480
	MinSampleRate     = 8000.0
	MaxSampleRate     = 192000.0
)

// Device is the dummy backend's only device shape; the same type backs
// the input, output and duplex devices the driver lists, distinguished by
// kind.
type Device struct {
	name string
	kind device.DeviceType
	ext  *device.Selector
}

// NewDevice returns a dummy Device reporting the given name and type. The
// device registers facade opener capabilities for each direction its kind
// supports, so runtime-selected callers can open streams on it without
// knowing the concrete *Device type.
func NewDevice(name string, kind device.DeviceType) *Device {
	d := &Device{name: name, kind: kind, ext: device.NewSelector()}
	if kind.Has(device.Input) {
		device.Provide(d.ext, facade.InputOpener(func(cfg stream.Config, cb stream.InputCallback) (facade.AnyStreamHandle, error) {
			h, err := CreateInputStream(d, cfg, cb)
			if err != nil {
				return nil, err
			}
			return facade.Box[stream.InputCallback](h), nil
		}))
	}
	if kind.Has(device.Output) {
		device.Provide(d.ext, facade.OutputOpener(func(cfg stream.Config, cb stream.OutputCallback) (facade.AnyStreamHandle, error) {
			h, err := CreateOutputStream(d, cfg, cb)
			if err != nil {
				return nil, err
			}
			return facade.Box[stream.OutputCallback](h), nil
		}))
	}
	if kind.Has(device.Duplex) {
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

func (d *Device) Name() string                 { return d.name }
func (d *Device) Type() device.DeviceType      { return d.kind }
func (d *Device) Extensions() *device.Selector { return d.ext }

func (d *Device) IsConfigSupported(cfg stream.Config) bool {
	if cfg.SampleRate != 0 && (cfg.SampleRate < MinSampleRate || cfg.SampleRate > MaxSampleRate) {
		return false
	}
	if cfg.InputChannels < 0 || cfg.OutputChannels < 0 {
		return false
	}
	if cfg.InputChannels > 0 && !d.kind.Has(device.Input) {
		return false
	}
	if cfg.OutputChannels > 0 && !d.kind.Has(device.Output) {
		return false
	}
	if cfg.MinBufferSize > 0 && cfg.MaxBufferSize > 0 && cfg.MinBufferSize > cfg.MaxBufferSize {
		return false
	}
	return true
}

func (d *Device) EnumerateConfigurations() ([]stream.Config, bool) {
	return nil, false
}

func (d *Device) DefaultConfig() (stream.Config, error) {
	cfg := stream.Config{
		SampleRate: DefaultSampleRate,
		Format:     stream.FormatF32,
	}
	if d.kind.Has(device.Input) {
		cfg.InputChannels = DefaultChannels
	}
	if d.kind.Has(device.Output) {
		cfg.OutputChannels = DefaultChannels
	}
	return cfg, nil
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

func (d *Device) InputChannelMap() iter.Seq[device.Channel]  { return channelMap(DefaultChannels) }
func (d *Device) OutputChannelMap() iter.Seq[device.Channel] { return channelMap(DefaultChannels) }

func channelMap(n int) iter.Seq[device.Channel] {
	return func(yield func(device.Channel) bool) {
		for i := range n {
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
