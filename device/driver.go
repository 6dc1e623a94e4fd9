package device

// Driver is a backend's entry point: it enumerates the devices visible
// through one native audio API and resolves the platform's current
// default.
type Driver interface {
	// DisplayName identifies the backend, e.g. "ALSA" or "WASAPI".
	DisplayName() string
	// Version returns the underlying native library's version string, if
	// it reports one.
	Version() (string, error)
	// DefaultDevice returns the platform's default device matching kind.
	// ok is false if the platform reports no default for that kind.
	DefaultDevice(kind DeviceType) (Device, bool, error)
	// ListDevices enumerates every device the backend can see.
	ListDevices() ([]Device, error)
	// Extensions exposes backend-specific capabilities, such as a native
	// API selector.
	Extensions() *Selector
}

// SingleStreamDriver is implemented by drivers that track which devices
// currently have an open stream. Backends that permit only one open stream
// per device (ASIO is the motivating case: the underlying driver model has
// no concept of concurrent clients) consult it so that a second
// CreateInputStream/CreateOutputStream/CreateDuplexStream fails with a
// MultipleStreams error instead of silently stealing the device.
// Implementing the interface does not by itself refuse a second stream:
// the shared rtaudio driver implements it for every platform backend, and
// only the asio package checks it.
type SingleStreamDriver interface {
	Driver
	// HasOpenStream reports whether d currently has a live stream.
	HasOpenStream(d Device) bool
}
