package post

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPermalinkURL_NoZeroPadding(t *testing.T) {
	url := PermalinkURL(date(2023, time.May, 7), "hello-world")
	require.Equal(t, "2023/5/7/hello-world", url)
}

func TestPermalinkURL_TwoDigitComponents(t *testing.T) {
	url := PermalinkURL(date(2024, time.December, 31), "year-end")
	require.Equal(t, "2024/12/31/year-end", url)
}

func TestSortByDateDesc(t *testing.T) {
	posts := []*Post{
		{FrontMatter: FrontMatter{Slug: "old", Date: date(2020, time.January, 1)}},
		{FrontMatter: FrontMatter{Slug: "new", Date: date(2024, time.June, 1)}},
		{FrontMatter: FrontMatter{Slug: "mid", Date: date(2022, time.March, 15)}},
	}

	SortByDateDesc(posts)

	require.Equal(t, "new", posts[0].Slug)
	require.Equal(t, "mid", posts[1].Slug)
	require.Equal(t, "old", posts[2].Slug)
}

func TestSortByDateDesc_SameDateOrdersBySlug(t *testing.T) {
	d := date(2023, time.May, 7)
	posts := []*Post{
		{FrontMatter: FrontMatter{Slug: "bravo", Date: d}},
		{FrontMatter: FrontMatter{Slug: "alpha", Date: d}},
	}

	SortByDateDesc(posts)

	require.Equal(t, "alpha", posts[0].Slug)
	require.Equal(t, "bravo", posts[1].Slug)
}

func TestDistinctTags(t *testing.T) {
	posts := []*Post{
		{FrontMatter: FrontMatter{Tags: []string{"go", "blog"}}},
		{FrontMatter: FrontMatter{Tags: []string{"go", "notes"}}},
		{FrontMatter: FrontMatter{}},
	}

	require.Equal(t, []string{"blog", "go", "notes"}, DistinctTags(posts))
}

func TestWithTag(t *testing.T) {
	a := &Post{FrontMatter: FrontMatter{Slug: "a", Tags: []string{"go"}}}
	b := &Post{FrontMatter: FrontMatter{Slug: "b", Tags: []string{"blog"}}}
	c := &Post{FrontMatter: FrontMatter{Slug: "c", Tags: []string{"go", "blog"}}}

	require.Equal(t, []*Post{a, c}, WithTag([]*Post{a, b, c}, "go"))
	require.Empty(t, WithTag([]*Post{a, b, c}, "missing"))
}
