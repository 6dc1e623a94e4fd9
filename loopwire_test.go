package loopwire_test

import (
	"testing"

	"github.com/loopwire-audio/loopwire"
	_ "github.com/loopwire-audio/loopwire/backend/dummy"
	"github.com/loopwire-audio/loopwire/device"
)

func TestListDriversIncludesDummy(t *testing.T) {
	drivers, err := loopwire.ListDrivers()
	if err != nil {
		t.Fatalf("ListDrivers: %v", err)
	}
	var found bool
	for _, d := range drivers {
		if d.DisplayName() == "Dummy" {
			found = true
		}
	}
	if !found {
		t.Fatalf("ListDrivers() = %v, want it to include the dummy backend", drivers)
	}
}

func TestListDriversHonorsPreferredOrder(t *testing.T) {
	loopwire.RegisterDriver("zzz-test-backend", func() (device.Driver, error) {
		return dummyDriver{}, nil
	})

	drivers, err := loopwire.ListDrivers()
	if err != nil {
		t.Fatalf("ListDrivers: %v", err)
	}
	// "dummy" is listed in the default preferred_backends order, so it must
	// precede a backend registered under a name absent from that list.
	dummyIdx, extraIdx := -1, -1
	for i, d := range drivers {
		switch d.DisplayName() {
		case "Dummy":
			dummyIdx = i
		case "zzz":
			extraIdx = i
		}
	}
	if dummyIdx == -1 || extraIdx == -1 {
		t.Fatalf("expected both dummy and zzz-test-backend registered, got %v", drivers)
	}
	if dummyIdx > extraIdx {
		t.Fatalf("dummy (preferred) should be ordered before an unlisted backend: %v", drivers)
	}
}

// dummyDriver is a minimal device.Driver stand-in so this test file can
// register a second backend under a name not present in the default
// preferred_backends list without pulling in a real native backend.
type dummyDriver struct{}

func (dummyDriver) DisplayName() string { return "zzz" }
func (dummyDriver) Version() (string, error) { return "", nil }
func (dummyDriver) DefaultDevice(device.DeviceType) (device.Device, bool, error) {
	return nil, false, nil
}
func (dummyDriver) ListDevices() ([]device.Device, error) { return nil, nil }
func (dummyDriver) Extensions() *device.Selector          { return device.NewSelector() }

func TestConfigureAppliesLogDefaults(t *testing.T) {
	f, err := loopwire.Configure("debug", "")
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if f != nil {
		t.Fatalf("Configure with empty logFile should not open a file, got %v", f)
	}
}
