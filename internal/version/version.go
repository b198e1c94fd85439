// Package version holds build-time version information, set via -ldflags.
package version

var (
	// Version is the semantic version of the binary
	Version = "dev"

	// GitCommit is the short git commit hash
	GitCommit = "unknown"

	// BuildTime is the build timestamp in RFC3339 format
	BuildTime = "unknown"
)
