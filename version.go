package taglib

import "runtime"

// Version is the semantic version of the taglib bindings.
const Version = "0.1.0"

// VersionInfo describes the build, including which native library it uses.
type VersionInfo struct {
	// Version is the semantic version (e.g., "0.1.0")
	Version string
	// GitCommit is the git commit hash (set via ldflags at build time)
	GitCommit string
	// GoVersion is the Go version used to build
	GoVersion string
	// Native names the native library in use, or "none" for stub builds
	Native string
}

// GetVersionInfo returns detailed version information.
//
// GitCommit can be set at build time:
//
//	go build -ldflags="-X github.com/simonhull/taglib.gitCommit=$(git rev-parse HEAD)"
func GetVersionInfo() VersionInfo {
	native := "none"
	if l := currentLibrary(); l != nil {
		native = l.Name()
	}

	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
		Native:    native,
	}
}

// Set at build time via -ldflags.
var gitCommit = "unknown"
