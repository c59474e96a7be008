package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GatewayMetrics records backend call outcomes.
type GatewayMetrics interface {
	RecordRequest(endpoint string, status int, duration time.Duration)
	RecordNetworkFailure(endpoint string)
	RecordCircuitState(name, state string)
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) RecordRequest(string, int, time.Duration) {}
func (NoopMetrics) RecordNetworkFailure(string)              {}
func (NoopMetrics) RecordCircuitState(string, string)        {}

// PrometheusMetrics is the Prometheus-backed GatewayMetrics.
type PrometheusMetrics struct {
	requests        *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	networkFailures *prometheus.CounterVec
	circuitState    *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the gateway metrics on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arcana_gateway_requests_total",
			Help: "Backend requests by endpoint and HTTP status.",
		}, []string{"endpoint", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "arcana_gateway_request_duration_seconds",
			Help:    "Backend request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		networkFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arcana_gateway_network_failures_total",
			Help: "Backend requests that never received a response.",
		}, []string{"endpoint"}),
		circuitState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "arcana_gateway_circuit_open",
			Help: "1 while the gateway circuit breaker is open.",
		}, []string{"name"}),
	}

	reg.MustRegister(m.requests, m.latency, m.networkFailures, m.circuitState)
	return m
}

// RecordRequest counts a completed request.
func (m *PrometheusMetrics) RecordRequest(endpoint string, status int, duration time.Duration) {
	m.requests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordNetworkFailure counts a request that got no response.
func (m *PrometheusMetrics) RecordNetworkFailure(endpoint string) {
	m.networkFailures.WithLabelValues(endpoint).Inc()
}

// RecordCircuitState tracks breaker transitions.
func (m *PrometheusMetrics) RecordCircuitState(name, state string) {
	value := 0.0
	if state == "open" {
		value = 1
	}
	m.circuitState.WithLabelValues(name).Set(value)
}

// MetricsHandler serves /metrics for the given gatherer.
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}
