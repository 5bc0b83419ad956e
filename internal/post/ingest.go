package post

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/siteforge/internal/failure"
	"git.home.luguber.info/inful/siteforge/internal/frontmatter"
	"git.home.luguber.info/inful/siteforge/internal/markdown"
	"git.home.luguber.info/inful/siteforge/internal/result"
)

var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// Discover recursively lists every markdown file under dir. Any traversal
// failure aborts discovery as a whole; there is no partial success.
func Discover(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if markdownExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, failure.Newf("%w: %s: %w", ErrDiscoveryFailed, dir, err)
	}
	return paths, nil
}

// IngestOne reads, parses, validates, and renders a single source file into
// a Post. The pipeline short-circuits at the first failure for this file,
// and every failure is attributed to the file path.
func IngestOne(path string) (*Post, error) {
	p, err := ingest(path)
	if err != nil {
		return nil, failure.AtFile(path, err)
	}
	return p, nil
}

func ingest(path string) (*Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, failure.Wrap(err, "read file")
	}

	fm, body, had, err := frontmatter.Split(raw)
	if err != nil {
		return nil, err
	}
	if !had {
		return nil, ErrFrontMatterMissing
	}

	var meta FrontMatter
	if err := frontmatter.Decode(fm, &meta); err != nil {
		return nil, err
	}

	// Validation order is fixed: title first, then slug. Only the first
	// violated rule is reported per file.
	if meta.Title == "" {
		return nil, ErrTitleMissing
	}
	if meta.Slug == "" {
		return nil, ErrSlugMissing
	}

	content, err := markdown.Render(body)
	if err != nil {
		return nil, err
	}

	return &Post{
		FrontMatter: meta,
		Content:     content,
		URL:         PermalinkURL(meta.Date, meta.Slug),
		Path:        path,
	}, nil
}

// IngestAll discovers every markdown file under dir and ingests each one,
// returning either the full post collection or every per-file failure.
// A discovery failure is returned as a single failure; per-file failures
// never stop the remaining files from being attempted.
func IngestAll(dir string) ([]*Post, []error) {
	paths, err := Discover(dir)
	if err != nil {
		return nil, []error{err}
	}
	return result.Combine(result.Each(paths, IngestOne))
}
