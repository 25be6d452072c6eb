package zipfile

import (
	"archive/zip"
	"fmt"
	"path/filepath"
)

// ListEntries opens the archive read-only and returns every entry name in stored order.
func ListEntries(path string) ([]string, error) {
	reader, err := zip.OpenReader(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	defer func() {
		_ = reader.Close()
	}()

	names := make([]string, 0, len(reader.File))
	for _, file := range reader.File {
		names = append(names, file.Name)
	}

	return names, nil
}
