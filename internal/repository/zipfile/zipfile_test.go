package zipfile

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
}

// TestWriter_AddAndList writes two entries and reads them back with their contents.
func TestWriter_AddAndList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "app", "src", "Main.kt")
	writeFile(t, src, "fun main() {}")

	path := filepath.Join(dir, "out", "project.zip")

	w, removed, err := Create(path)
	require.NoError(t, err)
	require.False(t, removed)

	require.NoError(t, w.Add(src, filepath.Join("app", "src", "Main.kt")))
	require.NoError(t, w.Add(src, "./copy/Main.kt"))
	require.Equal(t, 2, w.Count())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	names, err := ListEntries(path)
	require.NoError(t, err)
	require.Equal(t, []string{"app/src/Main.kt", "copy/Main.kt"}, names)

	reader, err := zip.OpenReader(path)
	require.NoError(t, err)

	defer func() {
		_ = reader.Close()
	}()

	require.Equal(t, zip.Deflate, reader.File[0].Method)

	rc, err := reader.File[0].Open()
	require.NoError(t, err)

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, "fun main() {}", string(body))
}

// TestCreate_RemovesExisting checks that a stale archive never leaks old entries.
func TestCreate_RemovesExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "a")

	path := filepath.Join(dir, "project.zip")

	w, _, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Add(src, "stale.txt"))
	require.NoError(t, w.Close())

	w, removed, err := Create(path)
	require.NoError(t, err)
	require.True(t, removed)
	require.NoError(t, w.Add(src, "fresh.txt"))
	require.NoError(t, w.Close())

	names, err := ListEntries(path)
	require.NoError(t, err)
	require.Equal(t, []string{"fresh.txt"}, names)
}

// TestWriter_AddErrors covers missing sources, directories, duplicates and closed writers.
func TestWriter_AddErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "a")

	w, _, err := Create(filepath.Join(dir, "project.zip"))
	require.NoError(t, err)

	require.ErrorIs(t, w.Add(filepath.Join(dir, "missing.txt"), "missing.txt"), os.ErrNotExist)
	require.ErrorIs(t, w.Add(dir, "dir"), ErrNotRegular)

	require.NoError(t, w.Add(src, "a.txt"))
	require.ErrorIs(t, w.Add(src, "./a.txt"), ErrDuplicateEntry)
	require.Equal(t, 1, w.Count())

	require.NoError(t, w.Close())
	require.ErrorIs(t, w.Add(src, "b.txt"), ErrClosed)

	names, err := ListEntries(w.Path())
	require.NoError(t, err)
	require.Equal(t, []string{"a.txt"}, names)
}

// TestWriter_ReadFailureReservesName checks that a source failing mid-copy
// keeps its name taken, so a retry cannot store a second entry.
func TestWriter_ReadFailureReservesName(t *testing.T) {
	t.Parallel()

	// Opening and stating /proc/self/mem succeeds, reading offset 0 does not.
	const unreadable = "/proc/self/mem"
	if runtime.GOOS != "linux" {
		t.Skip("needs /proc/self/mem")
	}

	if _, err := os.Stat(unreadable); err != nil {
		t.Skipf("%s unavailable: %v", unreadable, err)
	}

	w, _, err := Create(filepath.Join(t.TempDir(), "project.zip"))
	require.NoError(t, err)

	err = w.Add(unreadable, "mem")
	require.ErrorIs(t, err, ErrTruncatedEntry)
	require.NotErrorIs(t, err, ErrDuplicateEntry)

	require.ErrorIs(t, w.Add(unreadable, "mem"), ErrDuplicateEntry)
	require.Zero(t, w.Count())
	require.NoError(t, w.Close())

	names, err := ListEntries(w.Path())
	require.NoError(t, err)
	require.Equal(t, []string{"mem"}, names)
}

// TestListEntries_NotAnArchive verifies a read error for garbage input.
func TestListEntries_NotAnArchive(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bogus.zip")
	writeFile(t, path, "definitely not a zip")

	_, err := ListEntries(path)
	require.Error(t, err)
}

// TestEntryName normalizes separators and leading dot segments.
func TestEntryName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "gradle/wrapper/gradle-wrapper.jar", EntryName("./gradle/wrapper/gradle-wrapper.jar"))
	require.Equal(t, "app/src/main/AndroidManifest.xml", EntryName(`app\src\main\AndroidManifest.xml`))
	require.Equal(t, "gradlew", EntryName("gradlew"))
}
