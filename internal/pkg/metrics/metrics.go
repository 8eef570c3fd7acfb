// Package metrics holds the Prometheus collectors for outbound API calls.
package metrics

import (
	"time"

	"wallet_inspector/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus"
)

// Endpoint labels.
const (
	EndpointNode         = "node_rpc"
	EndpointExchangeRate = "exchange_rate"
	EndpointExplorer     = "explorer_txlist"
	EndpointAddressStats = "address_stats"
)

var outcomeLabels = map[entity.ErrorKind]string{
	entity.KindNetwork:           "network",
	entity.KindMalformedResponse: "malformed_response",
	entity.KindMissingField:      "missing_field",
	entity.KindNumericParse:      "numeric_parse",
}

// Metrics records request counts and latencies per external endpoint.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the collectors on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wallet_inspector",
			Name:      "api_requests_total",
			Help:      "External API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wallet_inspector",
			Name:      "api_request_duration_seconds",
			Help:      "External API request latency by endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	m.registry.MustRegister(m.requests, m.duration)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Requests exposes the request counter, mostly for tests.
func (m *Metrics) Requests() *prometheus.CounterVec {
	if m == nil {
		return nil
	}
	return m.requests
}

// Observe records one finished request.
func (m *Metrics) Observe(endpoint string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, Outcome(err)).Inc()
	m.duration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
}

// Outcome maps an error to its metric label.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if label, ok := outcomeLabels[entity.KindOf(err)]; ok {
		return label
	}
	return "other"
}
