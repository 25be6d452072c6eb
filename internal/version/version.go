package version

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Name is the program name printed in front of the version.
const Name = "project-archiver"

const (
	develVersion = "(devel)"
	shortCommit  = 12
)

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "0.1.0-dev"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Info is the resolved build metadata.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
	Modified  bool
}

//nolint:gochecknoglobals // Build info never changes while the process runs.
var current = sync.OnceValue(func() Info {
	bi, _ := debug.ReadBuildInfo()

	return resolve(Info{Version: Version, Commit: Commit, BuildTime: BuildTime}, bi)
})

// Short returns only the semantic version string.
func Short() string {
	return current().Version
}

// Full returns a human-readable version line with commit and build time.
func Full() string {
	info := current()

	commit := info.Commit
	if info.Modified {
		commit += "-dirty"
	}

	return fmt.Sprintf("%s version: %s, commit: %s, built at: %s", Name, info.Version, commit, info.BuildTime)
}

// resolve fills ldflags defaults from the toolchain's build info.
// Values injected at link time always win.
func resolve(info Info, bi *debug.BuildInfo) Info {
	if bi == nil {
		return info
	}

	if info.Version == Version && bi.Main.Version != "" && bi.Main.Version != develVersion {
		info.Version = bi.Main.Version
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.Commit == "none" && setting.Value != "" {
				info.Commit = setting.Value[:min(len(setting.Value), shortCommit)]
			}
		case "vcs.time":
			if info.BuildTime == "unknown" && setting.Value != "" {
				info.BuildTime = setting.Value
			}
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}

	return info
}
