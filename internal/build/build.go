// Package build orchestrates one site build: ingest posts, dispatch the
// page catalogue, copy static assets, and aggregate every failure into a
// single report.
package build

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/siteforge/internal/config"
	"git.home.luguber.info/inful/siteforge/internal/logfields"
	"git.home.luguber.info/inful/siteforge/internal/metrics"
	"git.home.luguber.info/inful/siteforge/internal/page"
	"git.home.luguber.info/inful/siteforge/internal/post"
	"git.home.luguber.info/inful/siteforge/internal/render"
	"git.home.luguber.info/inful/siteforge/internal/result"
	"git.home.luguber.info/inful/siteforge/internal/sitewriter"
)

// Options configures one build run.
type Options struct {
	ContentDir   string
	TemplatesDir string
	StaticDir    string // optional; skipped when absent
	OutputDir    string
	Site         config.SiteConfig

	// Writer defaults to DiskWriter; injectable for tests.
	Writer sitewriter.Writer

	// Recorder defaults to NoopRecorder.
	Recorder metrics.Recorder
}

// Run executes a full build and returns its report. Ingestion failure is
// build-fatal: no pages are attempted without a post collection. Page and
// asset failures are collected, never short-circuited.
func Run(opts Options) *Report {
	start := time.Now()
	if opts.Writer == nil {
		opts.Writer = sitewriter.DiskWriter{}
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}

	report := &Report{BuildID: uuid.NewString()}
	defer func() {
		report.Duration = time.Since(start)
		opts.Recorder.ObserveBuildDuration(report.Duration)
		opts.Recorder.IncBuildOutcome(report.Outcome())
		report.log()
	}()

	slog.Info("starting build",
		logfields.BuildID(report.BuildID),
		logfields.Source(opts.ContentDir),
		logfields.Output(opts.OutputDir))

	engine, err := render.Load(opts.TemplatesDir)
	if err != nil {
		report.Failures = []error{err}
		return report
	}

	paths, err := post.Discover(opts.ContentDir)
	if err != nil {
		opts.Recorder.IncPostResult(metrics.ResultFailed)
		report.Failures = []error{err}
		return report
	}

	// Record per-file outcomes before combining: Combine drops the values
	// when any file failed, but clean files still count as successes.
	results := result.Each(paths, post.IngestOne)
	for _, r := range results {
		if r.Err != nil {
			opts.Recorder.IncPostResult(metrics.ResultFailed)
			continue
		}
		opts.Recorder.IncPostResult(metrics.ResultSuccess)
	}

	posts, errs := result.Combine(results)
	if len(errs) > 0 {
		report.Failures = errs
		return report
	}

	report.Posts = len(posts)
	warnURLCollisions(posts)

	ctx := &page.Context{
		OutputDir: opts.OutputDir,
		Posts:     posts,
		Renderer:  engine,
		Writer:    opts.Writer,
		Site:      opts.Site.TemplateData(),
		Recorder:  opts.Recorder,
	}

	report.Failures = page.Dispatch(ctx, Catalogue(opts.Site))
	report.Failures = append(report.Failures, copyStaticAssets(opts.StaticDir, opts.OutputDir, opts.Writer)...)
	return report
}

// warnURLCollisions flags distinct posts sharing a derived URL. The build
// proceeds (last write wins) but every colliding source file is named.
func warnURLCollisions(posts []*post.Post) {
	byURL := make(map[string][]string)
	for _, p := range posts {
		byURL[p.URL] = append(byURL[p.URL], p.Path)
	}
	for url, paths := range byURL {
		if len(paths) > 1 {
			slog.Warn("url collision: posts overwrite each other",
				logfields.URL(url),
				slog.Any("files", paths))
		}
	}
}
