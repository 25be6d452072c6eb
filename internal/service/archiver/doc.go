// Package archiver packages an Android project tree into a single zip archive.
//
// Run walks a fixed, ordered plan: the module source tree, named build files,
// the build-tool wrapper, a rules file, version-control metadata and top-level
// documentation. Every step tolerates missing inputs. Paths rejected by the
// exclusion filter never reach the archive, and a file that fails to copy is
// logged without stopping the run. After the archive is closed it is reopened
// read-only and checked against the plan's manifest; misses are reported but
// do not fail the run.
package archiver
