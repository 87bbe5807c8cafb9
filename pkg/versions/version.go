// Package versions provides version and build metadata for the starter and
// for the application embedding it.
package versions

import (
	"fmt"
	"path"
	"runtime"
	"runtime/debug"
	"time"
)

const unknownStr = "unknown"

// Version information set by build using -ldflags.
var (
	// Version is the current version of the starter.
	Version = "dev"
	// Commit is the git commit hash of the build.
	Commit = unknownStr
	// BuildDate is the date the binary was built, in RFC 3339 format.
	BuildDate = unknownStr
)

// VersionInfo represents the version information of the starter.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersionInfo returns the version information of the starter.
func GetVersionInfo() VersionInfo {
	version := Version
	if version == "dev" {
		version = "build-" + shortCommit(Commit)
	}

	buildDate := BuildDate
	if t, err := time.Parse(time.RFC3339, buildDate); err == nil {
		buildDate = t.UTC().Format("2006-01-02 15:04:05 MST")
	}

	return VersionInfo{
		Version:   version,
		Commit:    Commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// shortCommit returns the first 8 characters of the commit hash, or the
// full hash if it is shorter.
func shortCommit(commit string) string {
	if commit == unknownStr {
		return unknownStr
	}
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}

// AppInfo returns the name and version recorded in the build metadata of the
// main module. It is the closest Go analog to a jar manifest's
// Implementation-Title and Implementation-Version: either value may be empty
// when the binary was built without module information, and callers are
// expected to treat them as fallbacks only.
func AppInfo() (name, version string) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	return appInfoFrom(bi)
}

func appInfoFrom(bi *debug.BuildInfo) (name, version string) {
	if bi.Main.Path != "" {
		name = path.Base(bi.Main.Path)
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		version = v
	}
	return name, version
}
