package build

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/siteforge/internal/failure"
	"git.home.luguber.info/inful/siteforge/internal/logfields"
)

// Report is the outcome of one build run.
type Report struct {
	BuildID  string
	Posts    int
	Duration time.Duration
	Failures []error
}

// Failed reports whether any failure occurred.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

// Outcome returns the build outcome label: success or failed.
func (r *Report) Outcome() string {
	if r.Failed() {
		return "failed"
	}
	return "success"
}

// FlattenedFailures expands the collected failures into display lines, one
// per leaf failure, preserving file attribution.
func (r *Report) FlattenedFailures() []error {
	return failure.FlattenAll(r.Failures)
}

func (r *Report) log() {
	if r.Failed() {
		slog.Error("build finished with failures",
			logfields.BuildID(r.BuildID),
			logfields.Count(len(r.FlattenedFailures())),
			logfields.DurationMS(float64(r.Duration.Milliseconds())))
		return
	}
	slog.Info("build finished",
		logfields.BuildID(r.BuildID),
		logfields.Count(r.Posts),
		logfields.DurationMS(float64(r.Duration.Milliseconds())))
}
