package build

import (
	"html/template"
	"path/filepath"

	"git.home.luguber.info/inful/siteforge/internal/config"
	"git.home.luguber.info/inful/siteforge/internal/failure"
	"git.home.luguber.info/inful/siteforge/internal/feed"
	"git.home.luguber.info/inful/siteforge/internal/page"
	"git.home.luguber.info/inful/siteforge/internal/post"
	"git.home.luguber.info/inful/siteforge/internal/result"
	"git.home.luguber.info/inful/siteforge/internal/sitewriter"
)

// Catalogue returns the fixed, ordered set of pages a build renders. It is
// declared once per build and never derived from the filesystem.
func Catalogue(site config.SiteConfig) []page.Page {
	return []page.Page{
		page.FixedPage{PageName: "about", Template: "about", URL: "about"},
		page.SinglePage{PageName: "home", Run: generateHome},
		page.SinglePage{PageName: "feed", Run: func(ctx *page.Context) error {
			return generateFeed(ctx, site)
		}},
		page.MultiPage{PageName: "posts", Run: generatePosts},
		page.MultiPage{PageName: "tags", Run: generateTags},
	}
}

// generateHome renders the post listing at the site root, newest first.
func generateHome(ctx *page.Context) error {
	ordered := make([]*post.Post, len(ctx.Posts))
	copy(ordered, ctx.Posts)
	post.SortByDateDesc(ordered)

	html, err := ctx.Renderer.Render("home", map[string]any{
		"Site":  ctx.Site,
		"Posts": ordered,
	})
	if err != nil {
		return err
	}
	return sitewriter.WritePage(ctx.Writer, ctx.OutputDir, "", []byte(html))
}

// generateFeed writes feed.xml at the output root as a direct file.
func generateFeed(ctx *page.Context, site config.SiteConfig) error {
	out, err := feed.Render(site, ctx.Posts)
	if err != nil {
		return err
	}
	if err := ctx.Writer.EnsureDir(ctx.OutputDir); err != nil {
		return err
	}
	return ctx.Writer.WriteFile(filepath.Join(ctx.OutputDir, "feed.xml"), []byte(out))
}

// generatePosts renders one page per post at the post's permalink URL.
// Units are independent: one failed post never stops the others.
func generatePosts(ctx *page.Context) []error {
	results := result.Each(ctx.Posts, func(p *post.Post) (string, error) {
		if err := generateOnePost(ctx, p); err != nil {
			return "", failure.AtFile(p.Path, err)
		}
		return p.URL, nil
	})
	_, errs := result.Combine(results)
	return errs
}

func generateOnePost(ctx *page.Context, p *post.Post) error {
	html, err := ctx.Renderer.Render("post", map[string]any{
		"Site":    ctx.Site,
		"Post":    p,
		"Content": template.HTML(p.Content),
	})
	if err != nil {
		return err
	}
	return sitewriter.WritePage(ctx.Writer, ctx.OutputDir, p.URL, []byte(html))
}

// generateTags renders one listing page per distinct tag under tags/.
func generateTags(ctx *page.Context) []error {
	results := result.Each(post.DistinctTags(ctx.Posts), func(tag string) (string, error) {
		tagged := post.WithTag(ctx.Posts, tag)
		post.SortByDateDesc(tagged)
		html, err := ctx.Renderer.Render("tag", map[string]any{
			"Site":  ctx.Site,
			"Tag":   tag,
			"Posts": tagged,
		})
		if err != nil {
			return "", failure.Wrap(err, "tag "+tag)
		}
		if err := sitewriter.WritePage(ctx.Writer, ctx.OutputDir, "tags/"+tag, []byte(html)); err != nil {
			return "", failure.Wrap(err, "tag "+tag)
		}
		return tag, nil
	})
	_, errs := result.Combine(results)
	return errs
}
