package archiver

import (
	"context"
	"os"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/project-archiver/internal/logger"
)

const (
	// ExecutableName is the base name of the archiver binary.
	ExecutableName = "project-archiver"

	// linuxCommLength is the kernel limit for process names reported in /proc/<pid>/stat.
	linuxCommLength = 15
)

// processLister returns a snapshot of the process table.
type processLister func() ([]ps.Process, error)

// isArchiverRunningNow scans the process table for another archiver binary.
// Failure to list processes is logged and treated as "not running".
func isArchiverRunningNow(ctx context.Context, list processLister) bool {
	processList, err := list()
	if err != nil {
		logger.WarnKV(ctx, "Unable to list processes, skipping instance check", "error", err)
		return false
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if isArchiverExecutable(process.Executable(), runtime.GOOS) {
			logger.WarnKV(ctx, "Found another archiver process", "pid", process.Pid())
			return true
		}
	}

	return false
}

// isArchiverExecutable reports whether a process name belongs to the archiver on goos.
func isArchiverExecutable(name, goos string) bool {
	want := ExecutableName

	if goos == "windows" {
		want += ".exe"

		return strings.EqualFold(name, want)
	}

	if name == want {
		return true
	}

	// Linux truncates process names.
	return goos == "linux" && len(name) == linuxCommLength && strings.HasPrefix(want, name)
}
