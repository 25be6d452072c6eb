// Package version exposes build metadata for project-archiver.
//
// Version, Commit and BuildTime can be injected through -ldflags. When they
// are left at their defaults, the module version and VCS stamp recorded by
// the Go toolchain are used instead, so `go install` builds still report
// where they came from.
package version
