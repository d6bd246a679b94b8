package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jongio/escapehatch/logutil"
)

// Prober periodically checks the destination with HEAD requests (GET when
// the server rejects HEAD), guarded by a circuit breaker.
type Prober struct {
	cfg     Config
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *logutil.ComponentLogger

	mu   sync.RWMutex
	last Result
}

// New creates a Prober for cfg.URL.
func New(cfg Config) *Prober {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 60 * time.Second
	}

	client := &http.Client{Timeout: cfg.Timeout, Transport: sharedHTTPTransport}
	if cfg.Client != nil {
		c := *cfg.Client
		client = &c
	}
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	p := &Prober{
		cfg:    cfg,
		client: client,
		log:    logutil.NewLogger("probe").WithFields("url", cfg.URL),
		last:   Result{URL: cfg.URL, Status: StatusUnknown},
	}

	if cfg.BreakerFailures > 0 {
		p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "destination",
			MaxRequests: 1,
			Timeout:     cfg.BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.BreakerFailures
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				p.log.Warn("destination circuit breaker changed state", "from", from.String(), "to", to.String())
				if cfg.EnableMetrics {
					recordBreakerState(to)
				}
			},
		})
	}
	return p
}

// Status returns the most recent result.
func (p *Prober) Status() Result {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

// Ready reports whether the destination is not known to be down. A prober
// that has not completed a check yet is ready.
func (p *Prober) Ready() bool {
	return p.Status().Status != StatusUnhealthy
}

// BreakerState returns the breaker state, or closed when the breaker is
// disabled.
func (p *Prober) BreakerState() gobreaker.State {
	if p.breaker == nil {
		return gobreaker.StateClosed
	}
	return p.breaker.State()
}

// Run probes immediately and then every Interval until ctx is done. It
// returns at once when Interval is zero.
func (p *Prober) Run(ctx context.Context) {
	if p.cfg.Interval <= 0 {
		p.log.Debug("destination probing disabled")
		return
	}

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	p.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}

// Check runs one probe and stores its result.
func (p *Prober) Check(ctx context.Context) Result {
	start := time.Now()

	var result Result
	if p.breaker != nil {
		output, err := p.breaker.Execute(func() (interface{}, error) {
			res := p.probe(ctx)
			if res.Status == StatusUnhealthy {
				return res, fmt.Errorf("probe failed: %s", res.Error)
			}
			return res, nil
		})
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			result = Result{
				URL:    p.cfg.URL,
				Status: StatusUnhealthy,
				Error:  "circuit breaker open - destination unavailable",
			}
		default:
			if typed, ok := output.(Result); ok {
				result = typed
			} else {
				result = Result{URL: p.cfg.URL, Status: StatusUnknown, Error: "unexpected probe result"}
			}
		}
	} else {
		result = p.probe(ctx)
	}

	result.Timestamp = start
	result.ResponseTime = time.Since(start)

	if p.cfg.EnableMetrics {
		recordProbe(result)
	}

	p.mu.Lock()
	prev := p.last.Status
	p.last = result
	p.mu.Unlock()

	if prev != result.Status {
		p.log.Info("destination status changed", "from", prev, "to", result.Status, "code", result.StatusCode, "error", result.Error)
	}
	return result
}

func (p *Prober) probe(ctx context.Context) Result {
	result := p.do(ctx, http.MethodHead)
	if result.StatusCode == http.StatusMethodNotAllowed || result.StatusCode == http.StatusNotImplemented {
		result = p.do(ctx, http.MethodGet)
	}
	return result
}

func (p *Prober) do(ctx context.Context, method string) Result {
	result := Result{URL: p.cfg.URL, Method: method}

	req, err := http.NewRequestWithContext(ctx, method, p.cfg.URL, nil)
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = fmt.Sprintf("failed to create request: %v", err)
		return result
	}
	req.Header.Set("User-Agent", "escapehatch-probe/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = fmt.Sprintf("connection failed: %v", err)
		return result
	}
	_ = resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Status = statusFromHTTPCode(resp.StatusCode)
	if resp.StatusCode >= 400 {
		result.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return result
}
