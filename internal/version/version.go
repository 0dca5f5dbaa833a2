// Package version stamps the module with a semantic version, grounded on
// the ottomap repo's main.go version-variable idiom.
package version

import "github.com/maloquacious/semver"

// Version is the module's current semantic version.
var Version = semver.Version{
	Major: 0,
	Minor: 1,
	Patch: 0,
	Build: semver.Commit(),
}

// Short returns the MAJOR.MINOR.PATCH string, suitable for a --version flag.
func Short() string {
	return Version.Short()
}

// String returns the full version string including build metadata.
func String() string {
	return Version.String()
}
