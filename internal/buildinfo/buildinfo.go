// Package buildinfo reports version and VCS provenance for the demo
// binaries, grounded on the teacher's src/version.go: read
// runtime/debug.ReadBuildInfo and pull the vcs.* settings Go's build
// tooling stamps into every binary built from a VCS checkout.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Info is what cmd/sandosd prints for --version.
type Info struct {
	Version   string
	Revision  string
	Time      string
	Modified  bool
	GoVersion string
}

// Read gathers build provenance for the running binary. version is the
// module version string set via -ldflags at release build time (empty for
// a plain "go build" during development, same as the teacher's
// SAMOYED_VERSION).
func Read(version string) Info {
	info := Info{Version: version}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	info.Revision = getBuildSettingOrDefault(bi, "vcs.revision", "unknown")
	info.Time = getBuildSettingOrDefault(bi, "vcs.time", "unknown")
	info.Modified = getBuildSettingOrDefault(bi, "vcs.modified", "false") == "true"

	return info
}

func getBuildSettingOrDefault(bi *debug.BuildInfo, key, defaultValue string) string {
	for _, s := range bi.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return defaultValue
}

// String renders Info the way the teacher's printVersion(verbose=true)
// banner does: version, then revision/time/dirty on a second line.
func (i Info) String() string {
	version := i.Version
	if version == "" {
		version = "dev"
	}
	dirty := ""
	if i.Modified {
		dirty = "-dirty"
	}
	return fmt.Sprintf("sandosd %s (go%s)\n  rev %s%s, built %s", version, i.GoVersion, i.Revision, dirty, i.Time)
}
