// Package version exposes build-time metadata for the flightpulse binary.
package version

// Set at build time via -ldflags "-X .../pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
