// Package version holds the console's version string.
package version

// Version is the current release, overridden at build time via
// -ldflags "-X github.com/example/plumbops/internal/version.Version=...".
var Version = "0.4.0"

// String returns the version for cobra's --version flag.
func String() string {
	return Version
}
