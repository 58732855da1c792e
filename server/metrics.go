package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the HTTP server.
type Metrics struct {
	// requestsTotal counts handled requests by route and status code
	requestsTotal *prometheus.CounterVec
	// requestDuration tracks request latency by route
	requestDuration *prometheus.HistogramVec
	// commonPrefixes tracks how many common prefixes each listing produced
	commonPrefixes prometheus.Histogram
}

// NewMetrics creates the server collectors and registers them with reg.
// It panics if a collector with the same name is already registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "s3mock_http_requests_total",
				Help: "Total HTTP requests handled by s3mock",
			},
			[]string{"route", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "s3mock_http_request_duration_seconds",
				Help:    "HTTP request duration in s3mock",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		commonPrefixes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "s3mock_listing_common_prefixes",
				Help:    "Number of common prefixes per listing",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
	}

	reg.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.commonPrefixes,
	)
	return m
}

// ObserveRequest records one handled request.
func (m *Metrics) ObserveRequest(route string, code int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// ObserveListing records the size of one listing's common prefix set.
func (m *Metrics) ObserveListing(commonPrefixes int) {
	m.commonPrefixes.Observe(float64(commonPrefixes))
}
