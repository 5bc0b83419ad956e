// Package sitewriter materializes generated pages into the output
// directory. The Writer interface is injectable so generators can be tested
// against simulated write failures.
package sitewriter

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer is the output side of page generation.
type Writer interface {
	// EnsureDir creates path and any missing parents. Re-invoking on an
	// existing directory is a no-op success.
	EnsureDir(path string) error

	// WriteFile writes contents to path, overwriting any previous file.
	WriteFile(path string, contents []byte) error
}

// DiskWriter writes to the local filesystem.
type DiskWriter struct{}

func (DiskWriter) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return fmt.Errorf("create output directory %s: %w", path, err)
	}
	return nil
}

func (DiskWriter) WriteFile(path string, contents []byte) error {
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return fmt.Errorf("write output file %s: %w", path, err)
	}
	return nil
}

// WritePage materializes url as {root}/{url}/index.html. Directory creation
// failure prevents the write attempt for this one artifact only.
func WritePage(w Writer, root, url string, contents []byte) error {
	dir := filepath.Join(root, filepath.FromSlash(url))
	if err := w.EnsureDir(dir); err != nil {
		return err
	}
	return w.WriteFile(filepath.Join(dir, "index.html"), contents)
}
