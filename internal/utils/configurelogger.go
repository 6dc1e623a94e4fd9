package utils

import (
	"errors"
	"io"
	"log/slog"
	"os"
)

// ConfigureDefaultLogger points slog's default logger at the requested
// level and destination.
//
// Valid log levels are "none", "error", "warn", "info", "debug". Any other
// value returns an error. logFile may name a file path (opened for
// truncating write, JSON output) or be empty, in which case the logger
// writes text to stdout.
//
// Returns the os.File slog writes to, nil when logging to stdout or
// disabled, so the caller can close it on shutdown.
func ConfigureDefaultLogger(logLevel string, logFile string, loggerOptions slog.HandlerOptions) (*os.File, error) {
	switch logLevel {
	case "none":
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil, nil
	case "error":
		loggerOptions.Level = slog.LevelError
	case "warn":
		loggerOptions.Level = slog.LevelWarn
	case "info":
		loggerOptions.Level = slog.LevelInfo
	case "debug":
		loggerOptions.Level = slog.LevelDebug
	default:
		return nil, errors.New("unexpected log level")
	}

	if logFile == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &loggerOptions)))
		return nil, nil
	}

	logFilePointer, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logFilePointer, &loggerOptions)))
	return logFilePointer, nil
}
