// Package promcollector exports refresh metrics to Prometheus.
package promcollector

import (
	"strconv"
	"time"

	"github.com/hupe1980/meshdist"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements meshdist.MetricsCollector with Prometheus metrics.
type Collector struct {
	refreshDuration *prometheus.HistogramVec
	refreshes       *prometheus.CounterVec
	candidates      prometheus.Counter
	pairs           prometheus.Histogram
	skippedRefs     prometheus.Counter
	skips           *prometheus.CounterVec
	poolSize        prometheus.Gauge
}

var _ meshdist.MetricsCollector = (*Collector)(nil)

// New registers the collector's metrics with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Collector{
		// Labels: locked (true, false)
		refreshDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "meshdist",
			Subsystem: "refresh",
			Name:      "duration_seconds",
			Help:      "Time to compute one pair list",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"locked"}),

		// Labels: result (pairs, empty)
		refreshes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meshdist",
			Subsystem: "refresh",
			Name:      "total",
			Help:      "Total refreshes by outcome",
		}, []string{"result"}),

		candidates: f.NewCounter(prometheus.CounterOpts{
			Namespace: "meshdist",
			Subsystem: "refresh",
			Name:      "candidates_total",
			Help:      "Candidate pairs generated before deduplication",
		}),

		pairs: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "meshdist",
			Subsystem: "refresh",
			Name:      "pairs",
			Help:      "Pairs returned per refresh",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 1000, 10000},
		}),

		skippedRefs: f.NewCounter(prometheus.CounterOpts{
			Namespace: "meshdist",
			Subsystem: "lock",
			Name:      "stale_references_total",
			Help:      "Locked vertex references that no longer resolve",
		}),

		// Labels: source (tick, scene_change, user_action)
		skips: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meshdist",
			Subsystem: "scheduler",
			Name:      "skipped_total",
			Help:      "Scheduled refreshes skipped because no vertex moved",
		}, []string{"source"}),

		poolSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "meshdist",
			Subsystem: "refresh",
			Name:      "pool_vertices",
			Help:      "Vertices considered by the last refresh",
		}),
	}
}

// RecordRefresh implements meshdist.MetricsCollector.
func (c *Collector) RecordRefresh(stats meshdist.RefreshStats, duration time.Duration) {
	c.refreshDuration.WithLabelValues(strconv.FormatBool(stats.Locked)).Observe(duration.Seconds())

	result := "pairs"
	if stats.Pairs == 0 {
		result = "empty"
	}
	c.refreshes.WithLabelValues(result).Inc()
	c.candidates.Add(float64(stats.Candidates))
	c.pairs.Observe(float64(stats.Pairs))
	c.skippedRefs.Add(float64(stats.Skipped))
	c.poolSize.Set(float64(stats.Vertices))
}

// RecordSkip implements meshdist.MetricsCollector.
func (c *Collector) RecordSkip(src meshdist.Source) {
	c.skips.WithLabelValues(src.String()).Inc()
}
