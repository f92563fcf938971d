package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "respkv"

// Registry holds all application metrics.
type Registry struct {
	reg *prometheus.Registry

	CommandsTotal     *prometheus.CounterVec
	FailuresTotal     *prometheus.CounterVec
	ExpiredReads      prometheus.Counter
	ConnectionsActive prometheus.Gauge
	ConnectionsTotal  prometheus.Counter
}

// NewRegistry creates a registry with the respkv metrics plus the Go
// runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands executed, by command name.",
		}, []string{"command"}),
		FailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_failures_total",
			Help:      "Requests dropped without a reply, by reason.",
		}, []string{"reason"}),
		ExpiredReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expired_reads_total",
			Help:      "GET requests that found a key past its deadline.",
		}),
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Currently open client connections.",
		}),
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Client connections accepted since start.",
		}),
	}

	r.reg.MustRegister(
		r.CommandsTotal,
		r.FailuresTotal,
		r.ExpiredReads,
		r.ConnectionsActive,
		r.ConnectionsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// RegisterStore adds a collector reporting stored keys, in total and per
// shard.
func (r *Registry) RegisterStore(st StoreStats) error {
	return r.reg.Register(NewCollector(st))
}

// Gatherer exposes the underlying registry for tests and custom handlers.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// CommandExecuted counts an executed command.
func (r *Registry) CommandExecuted(name string) {
	r.CommandsTotal.WithLabelValues(name).Inc()
}

// RequestRejected counts a request dropped without a reply.
func (r *Registry) RequestRejected(reason string) {
	r.FailuresTotal.WithLabelValues(reason).Inc()
}

// ExpiredRead counts a read of an expired key.
func (r *Registry) ExpiredRead() {
	r.ExpiredReads.Inc()
}

// ConnectionOpened tracks a newly accepted connection.
func (r *Registry) ConnectionOpened() {
	r.ConnectionsTotal.Inc()
	r.ConnectionsActive.Inc()
}

// ConnectionClosed tracks a closed connection.
func (r *Registry) ConnectionClosed() {
	r.ConnectionsActive.Dec()
}
