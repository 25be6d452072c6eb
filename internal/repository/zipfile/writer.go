package zipfile

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/project-archiver/internal/domain/archive"
)

// DefaultFileMode is the permission of the created archive.
const DefaultFileMode os.FileMode = 0o644

var (
	// ErrDuplicateEntry is returned when a name was already written to the archive.
	ErrDuplicateEntry = errors.New("entry already present in archive")
	// ErrNotRegular is returned for sources that are not regular files.
	ErrNotRegular = errors.New("not a regular file")
	// ErrClosed is returned when adding to a closed writer.
	ErrClosed = errors.New("archive writer is closed")
	// ErrTruncatedEntry is returned when reading the source failed after its entry was started.
	// The partial entry stays in the archive and its name remains taken.
	ErrTruncatedEntry = errors.New("entry truncated")
)

// Writer appends deflate-compressed entries to a freshly created archive.
// It is not safe for concurrent use.
type Writer struct {
	// path is the archive location on disk.
	path string
	// file is the underlying archive file.
	file *os.File
	// zw writes the zip container into file.
	zw *zip.Writer
	// entries records every entry written so far.
	entries []archive.Entry
	// names indexes entries by name for duplicate detection.
	names map[string]struct{}
	// closed is set once Close has run.
	closed bool
}

// Create removes any existing file at path and opens a new archive there.
// removed reports whether a previous archive was deleted.
func Create(path string) (w *Writer, removed bool, err error) {
	path = filepath.Clean(path)

	switch err = os.Remove(path); {
	case err == nil:
		removed = true
	case !errors.Is(err, os.ErrNotExist):
		return nil, false, fmt.Errorf("remove existing archive: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return nil, removed, fmt.Errorf("create archive directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, DefaultFileMode)
	if err != nil {
		return nil, removed, fmt.Errorf("create archive: %w", err)
	}

	return &Writer{
		path:  path,
		file:  file,
		zw:    zip.NewWriter(file),
		names: make(map[string]struct{}),
	}, removed, nil
}

// Path returns the archive location.
func (w *Writer) Path() string {
	return w.path
}

// Add stores the regular file at source under name.
// The source is opened before the entry header is written,
// so a file that cannot be opened leaves nothing behind.
// A read failure during the copy leaves a truncated entry that is not counted.
func (w *Writer) Add(source, name string) error {
	if w.closed {
		return ErrClosed
	}

	name = EntryName(name)
	if _, ok := w.names[name]; ok {
		return fmt.Errorf("%s: %w", name, ErrDuplicateEntry)
	}

	src, err := os.Open(filepath.Clean(source))
	if err != nil {
		return err
	}

	defer func() {
		_ = src.Close()
	}()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", source, ErrNotRegular)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = name
	header.Method = zip.Deflate

	dst, err := w.zw.CreateHeader(header)
	if err != nil {
		return err
	}

	// The central directory lists the name from here on, whatever the copy does.
	w.names[name] = struct{}{}

	if _, err = io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy %s: %w: %w", source, ErrTruncatedEntry, err)
	}

	w.entries = append(w.entries, archive.Entry{Source: source, Name: name})

	return nil
}

// Count returns the number of complete entries written.
func (w *Writer) Count() int {
	return len(w.entries)
}

// Entries returns a copy of the written entries in write order.
func (w *Writer) Entries() []archive.Entry {
	return append([]archive.Entry(nil), w.entries...)
}

// Close writes the central directory and closes the file. Calling it twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}

	w.closed = true

	zipErr := w.zw.Close()
	fileErr := w.file.Close()

	if zipErr != nil {
		return fmt.Errorf("finalize archive: %w", zipErr)
	}

	if fileErr != nil {
		return fmt.Errorf("close archive: %w", fileErr)
	}

	return nil
}

// EntryName converts a relative path into an archive entry name with forward slashes.
func EntryName(name string) string {
	name = filepath.ToSlash(filepath.Clean(name))
	name = strings.ReplaceAll(name, `\`, "/")

	return strings.TrimPrefix(name, "./")
}
