package build

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/siteforge/internal/config"
	"git.home.luguber.info/inful/siteforge/internal/failure"
	"git.home.luguber.info/inful/siteforge/internal/metrics"
	"git.home.luguber.info/inful/siteforge/internal/sitewriter"
)

var testTemplates = map[string]string{
	"about.html": "<h1>About {{.Site.title}}</h1>",
	"home.html":  "<ul>{{range .Posts}}<li>{{.Title}}</li>{{end}}</ul>",
	"post.html":  "<article><h1>{{.Post.Title}}</h1>{{.Content}}</article>",
	"tag.html":   "<h1>{{.Tag}}</h1><ul>{{range .Posts}}<li>{{.Title}}</li>{{end}}</ul>",
}

func postSource(title, slug, date string, tags ...string) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: " + title + "\n")
	b.WriteString("slug: " + slug + "\n")
	b.WriteString("date: " + date + "\n")
	if len(tags) > 0 {
		b.WriteString("tags:\n")
		for _, tag := range tags {
			b.WriteString("  - " + tag + "\n")
		}
	}
	b.WriteString("---\n# " + title + "\n")
	return b.String()
}

type fixture struct {
	content   string
	templates string
	static    string
	output    string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		content:   filepath.Join(root, "content"),
		templates: filepath.Join(root, "templates"),
		static:    filepath.Join(root, "static"),
		output:    filepath.Join(root, "site"),
	}
	require.NoError(t, os.MkdirAll(f.content, 0o750))
	require.NoError(t, os.MkdirAll(f.templates, 0o750))
	for name, body := range testTemplates {
		require.NoError(t, os.WriteFile(filepath.Join(f.templates, name), []byte(body), 0o600))
	}
	return f
}

func (f fixture) addPost(t *testing.T, name, source string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.content, name), []byte(source), 0o600))
}

func (f fixture) options() Options {
	return Options{
		ContentDir:   f.content,
		TemplatesDir: f.templates,
		StaticDir:    f.static,
		OutputDir:    f.output,
		Site:         config.SiteConfig{Title: "Test Site", BaseURL: "https://example.com"},
	}
}

func TestRun_FullBuild(t *testing.T) {
	f := newFixture(t)
	f.addPost(t, "hello.md", postSource("Hello", "hello", "2023-05-07T00:00:00Z", "go"))
	f.addPost(t, "second.md", postSource("Second", "second", "2024-01-15T00:00:00Z", "go", "notes"))

	report := Run(f.options())
	require.False(t, report.Failed(), "failures: %v", report.FlattenedFailures())
	require.Equal(t, 2, report.Posts)
	require.Equal(t, "success", report.Outcome())

	require.FileExists(t, filepath.Join(f.output, "about", "index.html"))
	require.FileExists(t, filepath.Join(f.output, "index.html"))
	require.FileExists(t, filepath.Join(f.output, "feed.xml"))
	require.FileExists(t, filepath.Join(f.output, "2023", "5", "7", "hello", "index.html"))
	require.FileExists(t, filepath.Join(f.output, "2024", "1", "15", "second", "index.html"))
	require.FileExists(t, filepath.Join(f.output, "tags", "go", "index.html"))
	require.FileExists(t, filepath.Join(f.output, "tags", "notes", "index.html"))

	home, err := os.ReadFile(filepath.Join(f.output, "index.html"))
	require.NoError(t, err)
	// Newest first.
	require.Less(t, strings.Index(string(home), "Second"), strings.Index(string(home), "Hello"))
}

func TestRun_IngestionFailureIsBuildFatal(t *testing.T) {
	f := newFixture(t)
	f.addPost(t, "good.md", postSource("Good", "good", "2023-05-07T00:00:00Z"))
	f.addPost(t, "bad.md", "no front matter here\n")

	report := Run(f.options())
	require.True(t, report.Failed())
	require.Len(t, report.Failures, 1)

	// No pages were attempted: the output directory was never created.
	require.NoDirExists(t, f.output)
}

func TestRun_ReportsEveryBadFile(t *testing.T) {
	f := newFixture(t)
	f.addPost(t, "a.md", postSource("A", "a", "2023-01-01T00:00:00Z"))
	f.addPost(t, "bad1.md", "---\nslug: x\n---\nbody\n")
	f.addPost(t, "b.md", postSource("B", "b", "2023-02-01T00:00:00Z"))
	f.addPost(t, "bad2.md", "plain\n")
	f.addPost(t, "c.md", postSource("C", "c", "2023-03-01T00:00:00Z"))

	report := Run(f.options())
	require.True(t, report.Failed())
	require.Len(t, report.Failures, 2)

	lines := report.FlattenedFailures()
	require.Len(t, lines, 2)
	joined := lines[0].Error() + "\n" + lines[1].Error()
	require.Contains(t, joined, "bad1.md")
	require.Contains(t, joined, "bad2.md")
}

// postCountingRecorder tallies per-post outcomes and ignores everything else.
type postCountingRecorder struct {
	metrics.NoopRecorder
	success int
	failed  int
}

func (r *postCountingRecorder) IncPostResult(result metrics.ResultLabel) {
	switch result {
	case metrics.ResultSuccess:
		r.success++
	case metrics.ResultFailed:
		r.failed++
	}
}

func TestRun_CountsCleanPostsOnPartialIngestionFailure(t *testing.T) {
	f := newFixture(t)
	f.addPost(t, "a.md", postSource("A", "a", "2023-01-01T00:00:00Z"))
	f.addPost(t, "b.md", postSource("B", "b", "2023-02-01T00:00:00Z"))
	f.addPost(t, "bad.md", "no front matter\n")

	opts := f.options()
	recorder := &postCountingRecorder{}
	opts.Recorder = recorder

	report := Run(opts)
	require.True(t, report.Failed())
	require.Equal(t, 2, recorder.success)
	require.Equal(t, 1, recorder.failed)
}

func TestRun_MissingContentDirectory(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.RemoveAll(f.content))

	report := Run(f.options())
	require.True(t, report.Failed())
	require.Len(t, report.Failures, 1)
}

func TestRun_MissingTemplatesDirectory(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.RemoveAll(f.templates))

	report := Run(f.options())
	require.True(t, report.Failed())
	require.Len(t, report.Failures, 1)
}

func TestRun_CopiesStaticAssets(t *testing.T) {
	f := newFixture(t)
	f.addPost(t, "hello.md", postSource("Hello", "hello", "2023-05-07T00:00:00Z"))
	require.NoError(t, os.MkdirAll(filepath.Join(f.static, "css"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(f.static, "css", "main.css"), []byte("body{}"), 0o600))

	report := Run(f.options())
	require.False(t, report.Failed())
	require.FileExists(t, filepath.Join(f.output, "css", "main.css"))
}

func TestRun_RerunOverwritesCleanly(t *testing.T) {
	f := newFixture(t)
	f.addPost(t, "hello.md", postSource("Hello", "hello", "2023-05-07T00:00:00Z"))

	require.False(t, Run(f.options()).Failed())
	require.False(t, Run(f.options()).Failed())
}

// selectiveWriter fails every write whose path contains one of the marked
// substrings, and records successful writes.
type selectiveWriter struct {
	disk    sitewriter.DiskWriter
	failOn  []string
	written []string
}

func (w *selectiveWriter) EnsureDir(path string) error {
	return w.disk.EnsureDir(path)
}

func (w *selectiveWriter) WriteFile(path string, contents []byte) error {
	for _, marker := range w.failOn {
		if strings.Contains(path, marker) {
			return errors.New("simulated write failure")
		}
	}
	w.written = append(w.written, path)
	return w.disk.WriteFile(path, contents)
}

func TestRun_MultiPagePartialFailure(t *testing.T) {
	f := newFixture(t)
	f.addPost(t, "one.md", postSource("One", "one", "2023-01-01T00:00:00Z"))
	f.addPost(t, "two.md", postSource("Two", "two", "2023-02-01T00:00:00Z"))
	f.addPost(t, "three.md", postSource("Three", "three", "2023-03-01T00:00:00Z"))

	opts := f.options()
	w := &selectiveWriter{failOn: []string{filepath.Join("2023", "2", "1", "two")}}
	opts.Writer = w

	report := Run(opts)
	require.True(t, report.Failed())
	require.Len(t, report.Failures, 1)
	require.Contains(t, report.Failures[0].Error(), "two.md")

	// Siblings were still attempted and succeeded.
	require.FileExists(t, filepath.Join(f.output, "2023", "1", "1", "one", "index.html"))
	require.FileExists(t, filepath.Join(f.output, "2023", "3", "1", "three", "index.html"))
}

func TestRun_URLCollisionStillBuilds(t *testing.T) {
	f := newFixture(t)
	f.addPost(t, "a.md", postSource("A", "same", "2023-05-07T00:00:00Z"))
	f.addPost(t, "b.md", postSource("B", "same", "2023-05-07T00:00:00Z"))

	report := Run(f.options())
	require.False(t, report.Failed())
	require.FileExists(t, filepath.Join(f.output, "2023", "5", "7", "same", "index.html"))
}

func TestReport_FlattenPreservesAttribution(t *testing.T) {
	r := &Report{Failures: []error{
		failure.AtFile("a.md", failure.New("boom")),
		failure.NewAggregate([]error{failure.New("x"), failure.New("y")}),
	}}
	lines := r.FlattenedFailures()
	require.Len(t, lines, 3)
	require.Contains(t, lines[0].Error(), "a.md")
}
