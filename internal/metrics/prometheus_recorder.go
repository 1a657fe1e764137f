package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "deploygen"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once           sync.Once
	renderDuration *prom.HistogramVec
	artifacts      *prom.CounterVec
	bytesWritten   *prom.CounterVec
	generations    *prom.CounterVec
	lastSuccess    prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.renderDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering each artifact",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"artifact"})
		pr.artifacts = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_total",
			Help:      "Artifacts processed by result",
		}, []string{"artifact", "result"})
		pr.bytesWritten = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_bytes_total",
			Help:      "Bytes of rendered artifact content",
		}, []string{"artifact"})
		pr.generations = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generate runs by final outcome",
		}, []string{"outcome"})
		pr.lastSuccess = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful generation",
		})
		reg.MustRegister(pr.renderDuration, pr.artifacts, pr.bytesWritten, pr.generations, pr.lastSuccess)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveRender(artifact string, d time.Duration) {
	if p == nil || p.renderDuration == nil {
		return
	}
	p.renderDuration.WithLabelValues(artifact).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncArtifact(artifact string, result ResultLabel) {
	if p == nil || p.artifacts == nil {
		return
	}
	p.artifacts.WithLabelValues(artifact, string(result)).Inc()
}

func (p *PrometheusRecorder) AddBytes(artifact string, n int) {
	if p == nil || p.bytesWritten == nil {
		return
	}
	p.bytesWritten.WithLabelValues(artifact).Add(float64(n))
}

func (p *PrometheusRecorder) IncGeneration(outcome OutcomeLabel) {
	if p == nil || p.generations == nil {
		return
	}
	p.generations.WithLabelValues(string(outcome)).Inc()
	if outcome == OutcomeSuccess {
		p.lastSuccess.SetToCurrentTime()
	}
}
