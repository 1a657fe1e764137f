// Package metrics records generation metrics for deploygen.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check:
//
//	gen := &generator.Generator{Recorder: metrics.NoopRecorder{}}
//
// When --metrics-file is given, the CLI swaps in a PrometheusRecorder bound to a
// private registry and writes that registry in node-exporter textfile format once the
// run finishes (see WriteTextfile). A one-shot CLI has nothing to scrape, so no HTTP
// handler is provided.
package metrics
