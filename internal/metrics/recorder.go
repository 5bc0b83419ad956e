// Package metrics provides observability hooks for builds.
//
// Components receive a Recorder by injection and default to NoopRecorder,
// so metrics are zero-cost until a real implementation is wired in.
package metrics

import "time"

// ResultLabel enumerates per-unit result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for build metrics. Implementations
// may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome string) // outcome: success|failed
	IncPostResult(result ResultLabel)
	IncPageResult(page string, result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncBuildOutcome(string)             {}
func (NoopRecorder) IncPostResult(ResultLabel)          {}
func (NoopRecorder) IncPageResult(string, ResultLabel)  {}
