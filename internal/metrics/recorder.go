package metrics

import "time"

// ResultLabel enumerates per-artifact result categories for counters.
type ResultLabel string

const (
	ResultWritten ResultLabel = "written"
	ResultDryRun  ResultLabel = "dry_run"
	ResultFailed  ResultLabel = "failed"
)

// OutcomeLabel enumerates the final status of a Generate call.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeNotFound OutcomeLabel = "not_found"
	OutcomeInvalid  OutcomeLabel = "invalid"
	OutcomeFailed   OutcomeLabel = "failed"
)

// Recorder defines observability hooks for artifact generation.
type Recorder interface {
	ObserveRender(artifact string, d time.Duration)
	IncArtifact(artifact string, result ResultLabel)
	AddBytes(artifact string, n int)
	IncGeneration(outcome OutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRender(string, time.Duration) {}
func (NoopRecorder) IncArtifact(string, ResultLabel)     {}
func (NoopRecorder) AddBytes(string, int)                {}
func (NoopRecorder) IncGeneration(OutcomeLabel)          {}
