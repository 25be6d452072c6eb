// Package zipfile writes and reads the project archive.
//
// Writer owns the only write handle to the archive and must be closed before
// ListEntries opens the same file for reading.
package zipfile
