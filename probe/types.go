// Package probe checks that the redirect destination is reachable.
package probe

import (
	"net"
	"net/http"
	"time"
)

// HTTP transport timeouts for probe requests.
const (
	HTTPIdleConnTimeout       = 90 * time.Second
	HTTPDialTimeout           = 5 * time.Second
	HTTPKeepAliveTimeout      = 30 * time.Second
	HTTPTLSHandshakeTimeout   = 5 * time.Second
	HTTPExpectContinueTimeout = 1 * time.Second
)

// sharedHTTPTransport is shared by every Prober.
var sharedHTTPTransport = &http.Transport{
	MaxIdleConns:        10,
	MaxIdleConnsPerHost: 2,
	IdleConnTimeout:     HTTPIdleConnTimeout,
	DialContext: (&net.Dialer{
		Timeout:   HTTPDialTimeout,
		KeepAlive: HTTPKeepAliveTimeout,
	}).DialContext,
	TLSHandshakeTimeout:   HTTPTLSHandshakeTimeout,
	ExpectContinueTimeout: HTTPExpectContinueTimeout,
}

// Status is the reachability state of the destination.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
	// StatusUnknown means no probe has completed yet.
	StatusUnknown Status = "unknown"
)

// Result is the outcome of one probe.
type Result struct {
	URL          string        `json:"url"`
	Status       Status        `json:"status"`
	Method       string        `json:"method,omitempty"`
	StatusCode   int           `json:"statusCode,omitempty"`
	ResponseTime time.Duration `json:"responseTime"`
	Timestamp    time.Time     `json:"timestamp"`
	Error        string        `json:"error,omitempty"`
}

// Config configures a Prober.
type Config struct {
	URL string
	// Interval between background probes. Zero disables Run.
	Interval time.Duration
	Timeout  time.Duration
	// BreakerFailures is the number of consecutive unhealthy probes that
	// open the breaker. Zero disables the breaker.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
	EnableMetrics   bool
	// Client overrides the HTTP client, mainly for tests. Redirects are never
	// followed regardless.
	Client *http.Client
}

// statusFromHTTPCode maps a response code to a Status. Redirects count as
// reachable.
func statusFromHTTPCode(statusCode int) Status {
	switch {
	case statusCode >= 200 && statusCode < 400:
		return StatusHealthy
	case statusCode >= 500:
		return StatusUnhealthy
	default:
		return StatusDegraded
	}
}
