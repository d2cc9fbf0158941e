package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Plan result sources
const (
	SourceComputed = "computed"
	SourceCache    = "cache"
)

// Metrics holds the planner's Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry          *prometheus.Registry
	plans             *prometheus.CounterVec
	planDuration      prometheus.Histogram
	planMonths        prometheus.Histogram
	snapshotsRecorded prometheus.Counter
	snapshotsPruned   prometheus.Counter
}

// New registers the planner collectors, plus Go runtime and process collectors, on a
// dedicated registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wealthflow",
			Subsystem: "planner",
			Name:      "plans_total",
			Help:      "Monthly plans served, by source.",
		}, []string{"source"}),
		planDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wealthflow",
			Subsystem: "planner",
			Name:      "plan_duration_seconds",
			Help:      "Time spent computing a monthly plan.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		planMonths: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wealthflow",
			Subsystem: "planner",
			Name:      "plan_months",
			Help:      "Number of months covered by computed plans.",
			Buckets:   []float64{12, 60, 120, 240, 360, 600, 1200},
		}),
		snapshotsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wealthflow",
			Subsystem: "snapshots",
			Name:      "recorded_total",
			Help:      "Projection snapshots recorded.",
		}),
		snapshotsPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wealthflow",
			Subsystem: "snapshots",
			Name:      "pruned_total",
			Help:      "Projection snapshots removed by retention.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.plans,
		m.planDuration,
		m.planMonths,
		m.snapshotsRecorded,
		m.snapshotsPruned,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObservePlan records one served plan
func (m *Metrics) ObservePlan(source string, months int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.plans.WithLabelValues(source).Inc()
	if source == SourceComputed {
		m.planDuration.Observe(elapsed.Seconds())
		m.planMonths.Observe(float64(months))
	}
}

// SnapshotRecorded counts a stored snapshot
func (m *Metrics) SnapshotRecorded() {
	if m == nil {
		return
	}
	m.snapshotsRecorded.Inc()
}

// SnapshotsPruned counts snapshots removed by retention
func (m *Metrics) SnapshotsPruned(n int) {
	if m == nil {
		return
	}
	m.snapshotsPruned.Add(float64(n))
}
