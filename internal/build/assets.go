package build

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/siteforge/internal/failure"
	"git.home.luguber.info/inful/siteforge/internal/logfields"
	"git.home.luguber.info/inful/siteforge/internal/sitewriter"
)

// copyStaticAssets copies every file under staticDir into outputDir,
// preserving relative paths. A missing static directory is not an error.
// Per-file failures are collected; one bad file never stops the rest.
func copyStaticAssets(staticDir, outputDir string, w sitewriter.Writer) []error {
	if staticDir == "" {
		return nil
	}
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		slog.Debug("no static directory, skipping", logfields.Path(staticDir))
		return nil
	}

	var failures []error
	err := filepath.WalkDir(staticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if copyErr := copyOneAsset(path, staticDir, outputDir, w); copyErr != nil {
			failures = append(failures, failure.AtFile(path, copyErr))
		}
		return nil
	})
	if err != nil {
		failures = append(failures, failure.Wrap(err, "walk static directory"))
	}
	return failures
}

func copyOneAsset(path, staticDir, outputDir string, w sitewriter.Writer) error {
	rel, err := filepath.Rel(staticDir, path)
	if err != nil {
		return err
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dest := filepath.Join(outputDir, rel)
	if err := w.EnsureDir(filepath.Dir(dest)); err != nil {
		return err
	}
	return w.WriteFile(dest, contents)
}
