package utils

import "github.com/spf13/viper"

// SetDefaults seeds viper with this module's process-wide defaults: log
// level/file and the backend preference order ListDrivers consults when
// an application hasn't overridden them.
func SetDefaults() {
	viper.SetDefault("loglevel", "info")
	viper.SetDefault("logfile", "")
	viper.SetDefault("preferred_backends", []string{"pipewire", "alsa", "wasapi", "coreaudio", "asio", "dummy"})
	viper.SetDefault("frame_duration_ms", 10)
}
