package observability

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the search collectors.
type Metrics struct {
	registry *prometheus.Registry

	searches *prometheus.CounterVec
	explored *prometheus.HistogramVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors on a fresh registry, so several instances
// (one per test, for example) never collide on registration.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wayfinder_searches_total",
				Help: "Total number of searches by mode and outcome",
			},
			[]string{"mode", "found"},
		),
		explored: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wayfinder_explored_cells",
				Help:    "Cells taken from the frontier per search",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"mode"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "wayfinder_search_duration_seconds",
				Help: "Duration of searches",
			},
			[]string{"mode"},
		),
	}
	m.registry.MustRegister(m.searches, m.explored, m.duration)
	return m
}

// Registry returns the private registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records one finished search.
func (m *Metrics) Observe(e *domain.SearchEvent) {
	mode := e.Mode.String()
	m.searches.WithLabelValues(mode, strconv.FormatBool(e.Found)).Inc()
	m.explored.WithLabelValues(mode).Observe(float64(e.Explored))
	m.duration.WithLabelValues(mode).Observe(e.Duration.Seconds())
}

// Hooks returns search hooks that feed the collectors.
func (m *Metrics) Hooks() domain.SearchHooks {
	return domain.SearchHooks{
		OnSearchDone: func(_ context.Context, e *domain.SearchEvent) {
			m.Observe(e)
		},
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
