// Package metrics holds the Prometheus metrics of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics of the service.
type Metrics struct {
	Registry        *prometheus.Registry
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	UsersRegistered prometheus.Counter
}

// New creates the metrics and registers them on a fresh registry, so that several routers can
// live in one process, as they do in tests.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		UsersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of users that registered.",
		}),
	}
	m.Registry.MustRegister(m.Requests, m.RequestDuration, m.UsersRegistered)
	return m
}
