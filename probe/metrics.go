package probe

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

var (
	probeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "escapehatch_destination_probe_duration_seconds",
			Help:    "Duration of destination probes in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)

	probeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escapehatch_destination_probe_total",
			Help: "Total number of destination probes performed",
		},
		[]string{"status", "status_code"},
	)

	probeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escapehatch_destination_probe_errors_total",
			Help: "Total number of destination probe errors",
		},
		[]string{"error_type"},
	)

	breakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "escapehatch_destination_breaker_state",
			Help: "Destination circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

func recordProbe(result Result) {
	probeDuration.WithLabelValues(string(result.Status)).Observe(result.ResponseTime.Seconds())
	probeTotal.WithLabelValues(string(result.Status), strconv.Itoa(result.StatusCode)).Inc()

	if result.Error != "" {
		probeErrors.WithLabelValues(errorType(result.Error)).Inc()
	}
}

func recordBreakerState(state gobreaker.State) {
	switch state {
	case gobreaker.StateClosed:
		breakerState.Set(0)
	case gobreaker.StateHalfOpen:
		breakerState.Set(1)
	case gobreaker.StateOpen:
		breakerState.Set(2)
	}
}

// errorType buckets error messages into a small label set.
func errorType(errMsg string) string {
	switch {
	case containsAny(errMsg, "timeout", "deadline", "timed out"):
		return "timeout"
	case containsAny(errMsg, "connection refused", "no such host", "unreachable"):
		return "connection_refused"
	case containsAny(errMsg, "circuit breaker"):
		return "circuit_breaker"
	case containsAny(errMsg, "canceled"):
		return "canceled"
	case containsAny(errMsg, "HTTP 5"):
		return "server_error"
	case containsAny(errMsg, "HTTP 401", "HTTP 403"):
		return "auth_error"
	case containsAny(errMsg, "HTTP 404"):
		return "not_found"
	default:
		return "unknown"
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
