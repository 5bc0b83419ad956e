// Package post models published articles and ingests them from a content
// directory of markdown files with YAML front matter.
package post

import (
	"fmt"
	"sort"
	"time"
)

// FrontMatter is the typed metadata block at the top of a post source file.
type FrontMatter struct {
	Title  string    `yaml:"title"`
	Author string    `yaml:"author"`
	Slug   string    `yaml:"slug"`
	Source string    `yaml:"source"`
	Date   time.Time `yaml:"date"`
	Tags   []string  `yaml:"tags"`
}

// Post is one published article. Constructed once during ingestion and
// immutable afterwards.
type Post struct {
	FrontMatter

	// Content is the rendered HTML body.
	Content string

	// URL is the canonical permalink path, derived from Date and Slug.
	URL string

	// Path is the source file the post was ingested from.
	Path string
}

// PermalinkURL derives the canonical URL path for a date and slug.
// Month and day are not zero padded: 2023-05-07 becomes "2023/5/7/slug".
func PermalinkURL(date time.Time, slug string) string {
	return fmt.Sprintf("%d/%d/%d/%s", date.Year(), int(date.Month()), date.Day(), slug)
}

// SortByDateDesc orders posts newest first, for listings and feeds.
// Posts on the same date keep a stable order by slug.
func SortByDateDesc(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Slug < posts[j].Slug
		}
		return posts[i].Date.After(posts[j].Date)
	})
}

// DistinctTags returns every tag used by posts, sorted, without duplicates.
func DistinctTags(posts []*Post) []string {
	seen := map[string]struct{}{}
	var tags []string
	for _, p := range posts {
		for _, tag := range p.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

// WithTag filters posts down to those carrying tag, preserving order.
func WithTag(posts []*Post, tag string) []*Post {
	var out []*Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if t == tag {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
