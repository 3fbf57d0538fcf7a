// Package config provides configuration helpers for scopecam commands.
// Everything is env-var driven so the daemon can run under a plain
// systemd unit on the scope without a config file.
package config

import "os"

// Defaults for the control daemon.
const (
	DefaultPort     = "8840"
	DefaultMode     = "single"
	DefaultBackend  = "v4l2"
	DefaultLeftDev  = "/dev/video0"
	DefaultRightDev = "/dev/video2"
)

// env returns the variable's value or a fallback.
func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Port returns the control API port from SCOPECAM_PORT.
func Port() string {
	return env("SCOPECAM_PORT", DefaultPort)
}

// Mode returns the startup operating mode from SCOPECAM_MODE:
// "none", "single" or "stereo".
func Mode() string {
	return env("SCOPECAM_MODE", DefaultMode)
}

// BackendKind returns the hardware backend selection from
// SCOPECAM_BACKEND: "v4l2" for real sensors, "sim" for development
// without hardware.
func BackendKind() string {
	return env("SCOPECAM_BACKEND", DefaultBackend)
}

// LeftDevice returns the left (or single) camera device node from
// SCOPECAM_LEFT_DEV.
func LeftDevice() string {
	return env("SCOPECAM_LEFT_DEV", DefaultLeftDev)
}

// RightDevice returns the right camera device node from
// SCOPECAM_RIGHT_DEV.
func RightDevice() string {
	return env("SCOPECAM_RIGHT_DEV", DefaultRightDev)
}

// LogLevel returns the log level from SCOPECAM_LOG_LEVEL.
func LogLevel() string {
	return env("SCOPECAM_LOG_LEVEL", "info")
}
