// Package bviewmetrics exports the sizes of a [bview.Store]'s views
// as Prometheus metrics.
package bviewmetrics

import (
	"github.com/Countermatt/Brahms/bview"
	"github.com/prometheus/client_golang/prometheus"
)

// SizeReader reports the current length of every view.
// [*bview.Store] satisfies SizeReader.
type SizeReader interface {
	Sizes() [bview.NViews]int
}

// Collector is a [prometheus.Collector] that reads view sizes
// from a SizeReader on every scrape.
type Collector struct {
	r SizeReader

	size *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a Collector reading from r.
// Metric names are prefixed with namespace, if non-empty.
func NewCollector(r SizeReader, namespace string) *Collector {
	return &Collector{
		r: r,

		size: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "view_size"),
			"Number of peer identifiers in each view, duplicates included.",
			[]string{"view"}, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.size
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	sizes := c.r.Sizes()
	for _, v := range bview.Views() {
		ch <- prometheus.MustNewConstMetric(
			c.size, prometheus.GaugeValue, float64(sizes[v]), v.String(),
		)
	}
}
