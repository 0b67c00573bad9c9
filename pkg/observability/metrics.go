package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total number of gateway calls",
		},
		[]string{"action", "result"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of gateway round trips in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)

	gatewayFailoversTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_failovers_total",
			Help: "Number of failover retries against the secondary endpoint",
		},
	)
)

// RecordGatewayRequest records one completed gateway call.
func RecordGatewayRequest(action string, success bool, duration time.Duration) {
	result := "declined"
	if success {
		result = "approved"
	}
	gatewayRequestsTotal.WithLabelValues(action, result).Inc()
	gatewayRequestDuration.WithLabelValues(action).Observe(duration.Seconds())
}

// RecordGatewayError records a call that failed before classification.
func RecordGatewayError(action string) {
	gatewayRequestsTotal.WithLabelValues(action, "error").Inc()
}

// RecordFailover counts a retry against the secondary endpoint.
func RecordFailover() {
	gatewayFailoversTotal.Inc()
}
