package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "redirector"

// Metrics holds the collectors for one application instance. Each instance
// owns its registry so tests can build several apps side by side.
type Metrics struct {
	registry       *prometheus.Registry
	resolutions    *prometheus.CounterVec
	lookupDuration prometheus.Histogram
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Number of short code resolutions by outcome.",
		}, []string{"outcome"}),
		lookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Latency of lookup store calls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	registry.MustRegister(
		m.resolutions,
		m.lookupDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveResolution records one outcome. A zero duration means the store
// was never called.
func (m *Metrics) ObserveResolution(outcome string, lookup time.Duration) {
	m.resolutions.WithLabelValues(outcome).Inc()
	if lookup > 0 {
		m.lookupDuration.Observe(lookup.Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
