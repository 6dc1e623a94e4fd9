// Package rtbackend implements the device/driver/stream plumbing shared
// by every rtaudio-backed backend (alsa, wasapi, coreaudio, asio,
// pipewire): they differ only in which native API constant they bind and
// what display name they report, so that one implementation here is
// parameterized by nativertaudio.API rather than five near-duplicates.
package rtbackend

import (
	"fmt"
	"sync"

	"github.com/loopwire-audio/loopwire/device"
	"github.com/loopwire-audio/loopwire/internal/nativertaudio"
	"github.com/loopwire-audio/loopwire/stream"
)

// Driver wraps one native rtaudio controller bound to a single API.
type Driver struct {
	api         nativertaudio.API
	displayName string
	native      *nativertaudio.Stream
	ext         *device.Selector

	openMu sync.Mutex
	open   map[int]bool // deviceID -> has an open stream, for SingleStreamDriver backends
}

// NewDriver instantiates the native controller for api.
func NewDriver(api nativertaudio.API, displayName string) (*Driver, error) {
	native, err := nativertaudio.Create(api)
	if err != nil {
		return nil, fmt.Errorf("rtbackend: create %s: %w", displayName, err)
	}
	d := &Driver{api: api, displayName: displayName, native: native, ext: device.NewSelector(), open: map[int]bool{}}
	device.Provide(d.ext, api)
	return d, nil
}

func (d *Driver) DisplayName() string { return d.displayName }

func (d *Driver) Version() (string, error) { return nativertaudio.Version(), nil }

func (d *Driver) Extensions() *device.Selector { return d.ext }

func (d *Driver) DefaultDevice(kind device.DeviceType) (device.Device, bool, error) {
	devices, err := d.native.Devices()
	if err != nil {
		return nil, false, stream.NewError(stream.BackendError, "enumerate devices", err)
	}
	wantInput := kind.Has(device.Input)
	wantOutput := kind.Has(device.Output)
	for _, info := range devices {
		if wantInput && wantOutput && info.IsDefaultInput && info.IsDefaultOutput {
			return newDevice(d, info), true, nil
		}
		if wantInput && !wantOutput && info.IsDefaultInput {
			return newDevice(d, info), true, nil
		}
		if wantOutput && !wantInput && info.IsDefaultOutput {
			return newDevice(d, info), true, nil
		}
	}
	return nil, false, nil
}

func (d *Driver) ListDevices() ([]device.Device, error) {
	infos, err := d.native.Devices()
	if err != nil {
		return nil, stream.NewError(stream.BackendError, "enumerate devices", err)
	}
	out := make([]device.Device, 0, len(infos))
	for _, info := range infos {
		out = append(out, newDevice(d, info))
	}
	return out, nil
}

// HasOpenStream reports whether dev already has a live stream, for
// backends (asio) that permit only one stream per device.
func (d *Driver) HasOpenStream(dev device.Device) bool {
	rd, ok := dev.(*Device)
	if !ok {
		return false
	}
	d.openMu.Lock()
	defer d.openMu.Unlock()
	return d.open[rd.info.ID]
}

func (d *Driver) markOpen(id int, open bool) {
	d.openMu.Lock()
	defer d.openMu.Unlock()
	if open {
		d.open[id] = true
	} else {
		delete(d.open, id)
	}
}

var (
	_ device.Driver             = (*Driver)(nil)
	_ device.SingleStreamDriver = (*Driver)(nil)
)
