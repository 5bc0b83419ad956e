// Package page defines the page catalogue: the closed set of page variants
// a build renders, and the dispatch that runs every one of them and
// concatenates their failures.
//
// Variants carry their generation behavior as injected function values, so
// the catalogue stays a plain ordered data structure declared before any
// build begins.
package page

import (
	"log/slog"

	"git.home.luguber.info/inful/siteforge/internal/failure"
	"git.home.luguber.info/inful/siteforge/internal/logfields"
	"git.home.luguber.info/inful/siteforge/internal/metrics"
	"git.home.luguber.info/inful/siteforge/internal/post"
	"git.home.luguber.info/inful/siteforge/internal/render"
	"git.home.luguber.info/inful/siteforge/internal/sitewriter"
)

// Context carries everything a page needs to generate its output.
type Context struct {
	OutputDir string
	Posts     []*post.Post
	Renderer  *render.Engine
	Writer    sitewriter.Writer

	// Site holds template-visible site metadata.
	Site map[string]any

	// Recorder receives per-page generation metrics; nil means no metrics.
	Recorder metrics.Recorder
}

func (c *Context) recorder() metrics.Recorder {
	if c.Recorder == nil {
		return metrics.NoopRecorder{}
	}
	return c.Recorder
}

// Page is one entry of the catalogue.
type Page interface {
	// Name identifies the page in diagnostics and logs.
	Name() string

	// Generate produces the page's output files. It returns one failure
	// per failed unit of work; a failed unit never prevents sibling units
	// from being attempted.
	Generate(ctx *Context) []error
}

// FixedPage produces exactly one output file at a fixed URL and takes no
// post data.
type FixedPage struct {
	PageName string
	Template string
	URL      string
}

func (p FixedPage) Name() string { return p.PageName }

func (p FixedPage) Generate(ctx *Context) []error {
	html, err := ctx.Renderer.Render(p.Template, map[string]any{"Site": ctx.Site})
	if err != nil {
		return []error{failure.Wrap(err, p.PageName)}
	}
	if err := sitewriter.WritePage(ctx.Writer, ctx.OutputDir, p.URL, []byte(html)); err != nil {
		return []error{failure.Wrap(err, p.PageName)}
	}
	return nil
}

// SinglePage produces exactly one output file from the full post
// collection. Run is injected at catalogue construction.
type SinglePage struct {
	PageName string
	Run      func(ctx *Context) error
}

func (p SinglePage) Name() string { return p.PageName }

func (p SinglePage) Generate(ctx *Context) []error {
	if err := p.Run(ctx); err != nil {
		return []error{failure.Wrap(err, p.PageName)}
	}
	return nil
}

// MultiPage produces zero or more output files, one per derived unit of
// work over the post collection. Run returns one failure per failed unit
// and never collapses them.
type MultiPage struct {
	PageName string
	Run      func(ctx *Context) []error
}

func (p MultiPage) Name() string { return p.PageName }

func (p MultiPage) Generate(ctx *Context) []error {
	errs := p.Run(ctx)
	wrapped := make([]error, 0, len(errs))
	for _, err := range errs {
		wrapped = append(wrapped, failure.Wrap(err, p.PageName))
	}
	return wrapped
}

// Dispatch runs every catalogue page in order and concatenates all
// failures. Every page is attempted regardless of earlier failures.
func Dispatch(ctx *Context, catalogue []Page) []error {
	var failures []error
	for _, p := range catalogue {
		errs := p.Generate(ctx)
		if len(errs) > 0 {
			slog.Warn("page generated with failures", logfields.Page(p.Name()), logfields.Count(len(errs)))
			ctx.recorder().IncPageResult(p.Name(), metrics.ResultFailed)
			failures = append(failures, errs...)
			continue
		}
		slog.Debug("page generated", logfields.Page(p.Name()))
		ctx.recorder().IncPageResult(p.Name(), metrics.ResultSuccess)
	}
	return failures
}
