// Package version holds build-time version information.
// The variables are populated via -ldflags at build time, e.g.:
//
//	go build -ldflags "-X github.com/mwieland/lectern/version.GitRelease=v0.1.0"
package version

import "runtime"

var (
	// GitRelease is the release tag or "dev" for untagged builds.
	GitRelease = "dev"

	// GitCommit is the git commit hash the binary was built from.
	GitCommit = "unknown"

	// GitCommitDate is the commit date of GitCommit.
	GitCommitDate = "unknown"

	// GoInfo is the Go toolchain version used for the build.
	GoInfo = runtime.Version()
)
