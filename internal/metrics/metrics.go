// Package metrics holds the Prometheus collectors of the service. All
// methods are safe on a nil *Metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Generations  *prometheus.CounterVec
	Artifacts    *prometheus.CounterVec
	SweepDeleted *prometheus.CounterVec
	HTTPRequests *prometheus.CounterVec
}

func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cvgen_generation_calls_total",
			Help: "Generation backend calls by backend and outcome.",
		}, []string{"backend", "outcome"}),
		Artifacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cvgen_artifacts_total",
			Help: "Produced artifacts by kind and outcome.",
		}, []string{"kind", "outcome"}),
		SweepDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cvgen_sweep_deleted_total",
			Help: "Files removed by the retention sweep, by kind.",
		}, []string{"kind"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cvgen_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
	}
	for _, c := range []prometheus.Collector{m.Generations, m.Artifacts, m.SweepDeleted, m.HTTPRequests} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) ObserveGeneration(backend, outcome string) {
	if m == nil {
		return
	}
	m.Generations.WithLabelValues(backend, outcome).Inc()
}

func (m *Metrics) ObserveArtifact(kind, outcome string) {
	if m == nil {
		return
	}
	m.Artifacts.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) ObserveSweepDeleted(kind string) {
	if m == nil {
		return
	}
	m.SweepDeleted.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveHTTP(method, path string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}
