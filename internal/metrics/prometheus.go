package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	UpstreamRequests  *prometheus.CounterVec
	UpstreamLatency   prometheus.Histogram
	ResourceRefreshes *prometheus.CounterVec
	ViewSwitches      *prometheus.CounterVec
	Deletes           *prometheus.CounterVec
	AuthFailures      prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		UpstreamRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests issued to the IsiPython API",
		}, []string{"endpoint", "status"}),
		UpstreamLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "IsiPython API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		ResourceRefreshes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_resource_refreshes_total",
			Help: "Total number of dashboard resource refreshes",
		}, []string{"resource", "outcome"}),
		ViewSwitches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_view_switches_total",
			Help: "Total number of view switches",
		}, []string{"view"}),
		Deletes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_deletes_total",
			Help: "Total number of delete operations",
		}, []string{"kind", "outcome"}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_auth_failures_total",
			Help: "Total number of authentication failures",
		}),
	}
}

func (m *Metrics) IncUpstreamRequest(endpoint, status string) {
	m.UpstreamRequests.WithLabelValues(endpoint, status).Inc()
}

func (m *Metrics) ObserveUpstreamLatency(seconds float64) {
	m.UpstreamLatency.Observe(seconds)
}

func (m *Metrics) IncResourceRefresh(resource, outcome string) {
	m.ResourceRefreshes.WithLabelValues(resource, outcome).Inc()
}

func (m *Metrics) IncViewSwitch(view string) {
	m.ViewSwitches.WithLabelValues(view).Inc()
}

func (m *Metrics) IncDelete(kind, outcome string) {
	m.Deletes.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) IncAuthFailures() {
	m.AuthFailures.Inc()
}
