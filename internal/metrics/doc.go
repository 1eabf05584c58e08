// Package metrics records build timings and output counts.
//
// Components receive a Recorder and default to NoopRecorder, so the build pipeline
// never checks for nil:
//
//	gen := site.NewGenerator(cfg, site.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// There is no metrics endpoint. A finished build can export its registry in the
// Prometheus text format with WriteTextfile, which suits node_exporter's textfile
// collector in CI or cron setups.
package metrics
