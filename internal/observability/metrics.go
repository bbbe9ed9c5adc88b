package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the prometheus collectors for the reservation service.
type Metrics struct {
	ReservationAttempts *prometheus.CounterVec
	AdminActions        *prometheus.CounterVec
	EventsPublished     *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
}

// NewMetrics registers the service collectors on the given registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		ReservationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stake_reservation_attempts_total",
			Help: "Reservation attempts by outcome.",
		}, []string{"outcome"}),
		AdminActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stake_admin_actions_total",
			Help: "Administrative stake actions by action and outcome.",
		}, []string{"action", "outcome"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stake_events_published_total",
			Help: "Domain events published by topic.",
		}, []string{"topic"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method, route, and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	registry.MustRegister(
		m.ReservationAttempts,
		m.AdminActions,
		m.EventsPublished,
		m.HTTPDuration,
	)
	return m
}
