package archiver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/project-archiver/internal/filter"
	"github.com/oshokin/project-archiver/internal/logger"
	"github.com/oshokin/project-archiver/internal/repository/zipfile"
)

// EntryWriter stores one file in the archive under name.
type EntryWriter interface {
	Add(source, name string) error
}

// collector feeds project files into an EntryWriter.
type collector struct {
	// w receives accepted files.
	w EntryWriter
	// filter rejects excluded paths.
	filter *filter.PathFilter
	// base is the directory entry names are relative to.
	base string
	// skip is the absolute path of the archive being written, never added to itself.
	skip string
}

// CollectTree walks base/dir and adds every file the filter accepts under its
// name relative to base. Excluded directories are pruned before descent.
// A missing dir yields 0. Files that fail to be written are logged and skipped.
func CollectTree(ctx context.Context, w EntryWriter, f *filter.PathFilter, base, dir string) int {
	c := &collector{w: w, filter: f, base: base}

	return c.tree(ctx, dir)
}

// AddFiles adds each named file relative to base by exact path, skipping missing ones.
// Named files are not subject to the exclusion filter.
func AddFiles(ctx context.Context, w EntryWriter, base string, names []string) int {
	c := &collector{w: w, base: base}

	return c.files(ctx, names)
}

// ScanTopLevel adds regular files directly inside base whose name ends with one of
// extensions or equals one of names, unless the filter rejects the name.
func ScanTopLevel(ctx context.Context, w EntryWriter, f *filter.PathFilter, base string, extensions, names []string) int {
	c := &collector{w: w, filter: f, base: base}

	return c.scan(ctx, extensions, names)
}

func (c *collector) tree(ctx context.Context, dir string) int {
	start := filepath.Join(c.base, dir)

	info, err := os.Stat(start)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.WarnKV(ctx, "Unable to read directory", "path", start, "error", err)
		}

		return 0
	}

	if !info.IsDir() {
		logger.DebugKV(ctx, "Not a directory, skipping", "path", start)
		return 0
	}

	var count int

	_ = filepath.WalkDir(start, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.WarnKV(ctx, "Skipping unreadable path", "path", path, "error", walkErr)
			return nil
		}

		rel := c.relative(path)

		if d.IsDir() {
			if path != start && c.excluded(rel) {
				logger.DebugKV(ctx, "Pruned directory", "path", rel)
				return filepath.SkipDir
			}

			return nil
		}

		if c.excluded(rel) {
			logger.DebugKV(ctx, "Excluded file", "path", rel)
			return nil
		}

		// Devices, sockets and pipes; symlinks are resolved by the writer.
		if mode := d.Type(); !mode.IsRegular() && mode&fs.ModeSymlink == 0 {
			logger.DebugKV(ctx, "Not a regular file, skipping", "path", rel)
			return nil
		}

		if c.add(ctx, path, rel) {
			count++
		}

		return nil
	})

	return count
}

func (c *collector) files(ctx context.Context, names []string) int {
	var count int

	for _, name := range names {
		path := filepath.Join(c.base, name)

		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			logger.DebugKV(ctx, "Optional file not present", "path", name)
			continue
		}

		if c.add(ctx, path, name) {
			logger.Infof(ctx, "Added: %s", zipfile.EntryName(name))

			count++
		}
	}

	return count
}

func (c *collector) scan(ctx context.Context, extensions, names []string) int {
	entries, err := os.ReadDir(c.base)
	if err != nil {
		logger.WarnKV(ctx, "Unable to list project root", "path", c.base, "error", err)
		return 0
	}

	wanted := sliceToSet(names)

	var count int

	for _, entry := range entries {
		name := entry.Name()

		if _, ok := wanted[name]; !ok && !hasAnySuffix(name, extensions) {
			continue
		}

		if c.excluded(name) {
			logger.DebugKV(ctx, "Excluded file", "path", name)
			continue
		}

		path := filepath.Join(c.base, name)

		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		if c.add(ctx, path, name) {
			count++
		}
	}

	return count
}

// add writes one file and reports whether a new entry was created.
func (c *collector) add(ctx context.Context, path, name string) bool {
	if c.isArchive(path) {
		return false
	}

	err := c.w.Add(path, name)

	switch {
	case err == nil:
		return true
	case errors.Is(err, zipfile.ErrDuplicateEntry):
		logger.InfoKV(ctx, "Already archived, skipping duplicate", "path", name)
	case errors.Is(err, zipfile.ErrNotRegular):
		logger.DebugKV(ctx, "Not a regular file, skipping", "path", name)
	default:
		logger.ErrorKV(ctx, "Error adding file", "path", path, "error", err)
	}

	return false
}

func (c *collector) excluded(path string) bool {
	return c.filter != nil && c.filter.Excluded(path)
}

func (c *collector) relative(path string) string {
	rel, err := filepath.Rel(c.base, path)
	if err != nil {
		return path
	}

	return rel
}

func (c *collector) isArchive(path string) bool {
	if c.skip == "" {
		return false
	}

	abs, err := filepath.Abs(path)

	return err == nil && abs == c.skip
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(name, suffix) {
			return true
		}
	}

	return false
}

// sliceToSet converts a slice to a set for quick lookups.
func sliceToSet[T comparable](elements []T) map[T]struct{} {
	result := make(map[T]struct{}, len(elements))
	for _, value := range elements {
		result[value] = struct{}{}
	}

	return result
}
