// Package metric provides Prometheus metrics for respkv.
//
//   - prometheus.go: registry, counters and the /metrics handler
//   - collector.go: collector reading the store size at scrape time
//
// Metrics are exposed at /metrics by the admin HTTP server.
package metric
