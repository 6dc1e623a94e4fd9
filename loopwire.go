// Package loopwire is the module's entry point: it holds the compile-time
// backend registry behind ListDrivers and the process-wide logging/
// configuration defaults every backend package shares. Individual
// backends (backend/alsa, backend/pipewire, backend/wasapi,
// backend/coreaudio, backend/asio, backend/dummy) register themselves
// into this registry from their init() (build-tag-gated for every
// platform backend; backend/dummy builds everywhere), the way database/sql
// drivers register themselves with the sql package rather than this
// package importing each backend directly, which would defeat the point
// of gating backends out of a build by platform.
package loopwire

import (
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/spf13/viper"

	"github.com/loopwire-audio/loopwire/device"
	"github.com/loopwire-audio/loopwire/internal/utils"
)

func init() {
	utils.SetDefaults()
}

// DriverFactory constructs a driver, performing whatever native
// initialization (e.g. creating the underlying rtaudio controller) that
// requires.
type DriverFactory func() (device.Driver, error)

var (
	registryMu sync.Mutex
	registry   = map[string]DriverFactory{}
)

// RegisterDriver makes factory available under name to ListDrivers. It is
// meant to be called from a backend package's init(), not by application
// code; registering the same name twice overwrites the earlier
// registration.
func RegisterDriver(name string, factory DriverFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// ListDrivers enumerates every backend compiled into this build, in the
// order named by the "preferred_backends" viper setting (see
// internal/utils.SetDefaults, overridable by the embedding application),
// with any registered backend not named in that list appended afterward
// in alphabetical order. Each driver is constructed immediately; a
// backend whose native controller fails to initialize aborts the whole
// call, since a partially populated driver list would silently hide a
// platform misconfiguration from the caller.
func ListDrivers() ([]device.Driver, error) {
	registryMu.Lock()
	factories := make(map[string]DriverFactory, len(registry))
	names := make([]string, 0, len(registry))
	for name, factory := range registry {
		factories[name] = factory
		names = append(names, name)
	}
	registryMu.Unlock()

	sort.Strings(names)
	seen := make(map[string]bool, len(names))
	ordered := make([]string, 0, len(names))
	for _, name := range viper.GetStringSlice("preferred_backends") {
		if _, ok := factories[name]; ok && !seen[name] {
			ordered = append(ordered, name)
			seen[name] = true
		}
	}
	for _, name := range names {
		if !seen[name] {
			ordered = append(ordered, name)
			seen[name] = true
		}
	}

	drivers := make([]device.Driver, 0, len(ordered))
	for _, name := range ordered {
		d, err := factories[name]()
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}

// Configure applies this module's logging defaults via log/slog, falling
// back to the "loglevel"/"logfile" viper settings for whichever of
// logLevel/logFile is left empty. It returns the opened log file, if any,
// so the caller can close it on shutdown.
func Configure(logLevel, logFile string) (*os.File, error) {
	if logLevel == "" {
		logLevel = viper.GetString("loglevel")
	}
	if logFile == "" {
		logFile = viper.GetString("logfile")
	}
	return utils.ConfigureDefaultLogger(logLevel, logFile, slog.HandlerOptions{})
}
