// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Collector gathers the portal's Prometheus metrics.
type Collector struct {
	loginTotal        *prometheus.CounterVec
	registrationTotal *prometheus.CounterVec
	httpStatus        *prometheus.CounterVec
	requestDuration   prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "instportal_login_total",
			Help: "Login attempts by role and outcome.",
		}, []string{"role", "outcome"}),
		registrationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "instportal_registration_total",
			Help: "Registration attempts by outcome.",
		}, []string{"outcome"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "instportal_http_status_total",
			Help: "Responses by HTTP status code.",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "instportal_request_duration_seconds",
			Help:    "Request handling latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.loginTotal,
		c.registrationTotal,
		c.httpStatus,
		c.requestDuration,
	)

	return c
}

// RecordLogin counts a login attempt.
func (c *Collector) RecordLogin(role, outcome string) {
	c.loginTotal.WithLabelValues(role, outcome).Inc()
}

// RecordRegistration counts a registration attempt.
func (c *Collector) RecordRegistration(outcome string) {
	c.registrationTotal.WithLabelValues(outcome).Inc()
}

// RecordHTTPStatus counts a response status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration records request latency.
func (c *Collector) RecordRequestDuration(d time.Duration) {
	c.requestDuration.Observe(d.Seconds())
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
