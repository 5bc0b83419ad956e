package post

// Sentinel errors for ingestion failures. These enable consistent
// classification of structural versus validation problems per source file.

import "errors"

var (
	// ErrFrontMatterMissing indicates a markdown file has no front matter block.
	ErrFrontMatterMissing = errors.New("front matter missing")

	// ErrTitleMissing indicates the front matter has no title.
	ErrTitleMissing = errors.New("title missing")

	// ErrSlugMissing indicates the front matter has no slug.
	ErrSlugMissing = errors.New("slug missing")

	// ErrDiscoveryFailed indicates filesystem traversal of the content
	// directory failed.
	ErrDiscoveryFailed = errors.New("content directory discovery failed")
)
