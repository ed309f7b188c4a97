// Package version carries the build metadata stamped into medview binaries.
package version

// Populated by the release build via -ldflags -X medview/internal/version.<var>.
var (
	// Version is the viewer release, "0.0.0-dev" for local builds.
	Version = "0.0.0-dev"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"

	// GitCommit is the commit the binary was built from.
	GitCommit = "unknown"
)
