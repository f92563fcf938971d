// Package httpserver is the optional admin HTTP listener.
//
// It serves Prometheus metrics on /metrics, a liveness probe on /healthz
// and build information on /version. It carries no data-plane traffic.
package httpserver
