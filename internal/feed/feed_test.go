package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/siteforge/internal/config"
	"git.home.luguber.info/inful/siteforge/internal/post"
)

func testSite() config.SiteConfig {
	return config.SiteConfig{
		Title:       "My Blog",
		Description: "words",
		BaseURL:     "https://example.com/",
	}
}

func testPost(slug string, date time.Time) *post.Post {
	return &post.Post{
		FrontMatter: post.FrontMatter{
			Title: "Post " + slug,
			Slug:  slug,
			Date:  date,
		},
		Content: "<p>body</p>",
		URL:     post.PermalinkURL(date, slug),
	}
}

func TestRender_ContainsEveryPostNewestFirst(t *testing.T) {
	older := testPost("older", time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := testPost("newer", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	out, err := Render(testSite(), []*post.Post{older, newer})
	require.NoError(t, err)

	require.Contains(t, out, "<title>My Blog</title>")
	require.Contains(t, out, "https://example.com/2024/6/1/newer/")
	require.Contains(t, out, "https://example.com/2022/1/1/older/")
	require.Less(t,
		indexOf(t, out, "newer"),
		indexOf(t, out, "older"),
	)
}

func TestRender_EmptyPostsStillValidChannel(t *testing.T) {
	out, err := Render(testSite(), nil)
	require.NoError(t, err)
	require.Contains(t, out, `<rss version="2.0">`)
	require.NotContains(t, out, "<item>")
}

func TestRender_PubDateIsRFC1123Z(t *testing.T) {
	p := testPost("dated", time.Date(2023, 5, 7, 12, 30, 0, 0, time.UTC))
	out, err := Render(testSite(), []*post.Post{p})
	require.NoError(t, err)
	require.Contains(t, out, "Sun, 07 May 2023 12:30:00 +0000")
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, "expected %q in output", needle)
	return idx
}
