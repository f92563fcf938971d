package metric

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/respkv/pkg/cmap"
)

// StoreStats is the view of the store read at scrape time.
type StoreStats interface {
	Len() int
	ShardStats() []cmap.ShardStats
}

// Collector reports store statistics at scrape time.
type Collector struct {
	store     StoreStats
	keys      *prometheus.Desc
	shardKeys *prometheus.Desc
}

// NewCollector creates a collector reading key counts from store.
func NewCollector(store StoreStats) *Collector {
	return &Collector{
		store: store,
		keys: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "keys"),
			"Keys held by the store, expired ones included.",
			nil, nil,
		),
		shardKeys: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "shard_keys"),
			"Keys held by each store shard.",
			[]string{"shard"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keys
	ch <- c.shardKeys
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(c.store.Len()))
	for _, s := range c.store.ShardStats() {
		ch <- prometheus.MustNewConstMetric(c.shardKeys, prometheus.GaugeValue,
			float64(s.Count), strconv.Itoa(s.Index))
	}
}
