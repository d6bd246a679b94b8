package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_HeadHealthy(t *testing.T) {
	var method atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method.Store(r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := New(Config{URL: srv.URL, Timeout: time.Second})
	assert.Equal(t, StatusUnknown, p.Status().Status)
	assert.True(t, p.Ready(), "unknown counts as ready")

	result := p.Check(context.Background())
	assert.Equal(t, StatusHealthy, result.Status)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, http.MethodHead, result.Method)
	assert.Equal(t, http.MethodHead, method.Load())
	assert.Equal(t, result, p.Status())
	assert.True(t, p.Ready())
}

func TestCheck_FallsBackToGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := New(Config{URL: srv.URL}).Check(context.Background())
	assert.Equal(t, StatusHealthy, result.Status)
	assert.Equal(t, http.MethodGet, result.Method)
}

func TestCheck_RedirectNotFollowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://elsewhere.invalid/", http.StatusFound)
	}))
	defer srv.Close()

	result := New(Config{URL: srv.URL}).Check(context.Background())
	assert.Equal(t, StatusHealthy, result.Status)
	assert.Equal(t, http.StatusFound, result.StatusCode)
}

func TestCheck_StatusCodes(t *testing.T) {
	tests := []struct {
		code int
		want Status
	}{
		{http.StatusNoContent, StatusHealthy},
		{http.StatusNotFound, StatusDegraded},
		{http.StatusServiceUnavailable, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer srv.Close()

			p := New(Config{URL: srv.URL})
			result := p.Check(context.Background())
			assert.Equal(t, tt.want, result.Status)
			assert.Equal(t, tt.want != StatusUnhealthy, p.Ready())
		})
	}
}

func TestCheck_ConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	result := New(Config{URL: url, Timeout: time.Second}).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, result.Status)
	assert.Contains(t, result.Error, "connection failed")
}

func TestCheck_BreakerTrips(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := New(Config{URL: srv.URL, BreakerFailures: 2, BreakerTimeout: time.Minute, EnableMetrics: true})

	for i := 0; i < 2; i++ {
		result := p.Check(context.Background())
		require.Equal(t, StatusUnhealthy, result.Status)
		assert.Equal(t, http.StatusBadGateway, result.StatusCode)
	}
	assert.Equal(t, gobreaker.StateOpen, p.BreakerState())

	result := p.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, result.Status)
	assert.Contains(t, result.Error, "circuit breaker open")
	assert.Equal(t, int32(2), hits.Load(), "open breaker short-circuits requests")
	assert.False(t, p.Ready())
}

func TestBreakerState_Disabled(t *testing.T) {
	assert.Equal(t, gobreaker.StateClosed, New(Config{URL: "https://example.com/"}).BreakerState())
}

func TestRun_ZeroIntervalReturns(t *testing.T) {
	done := make(chan struct{})
	go func() {
		New(Config{URL: "https://example.com/"}).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return with zero interval")
	}
}

func TestRun_ProbesUntilCancelled(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	p := New(Config{URL: srv.URL, Interval: 10 * time.Millisecond})

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return hits.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, StatusHealthy, p.Status().Status)
}

func TestErrorType(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"connection failed: context deadline exceeded", "timeout"},
		{"connection failed: dial tcp: connection refused", "connection_refused"},
		{"circuit breaker open - destination unavailable", "circuit_breaker"},
		{"HTTP 503", "server_error"},
		{"HTTP 403", "auth_error"},
		{"HTTP 404", "not_found"},
		{"something else", "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorType(tt.msg), tt.msg)
	}
}
