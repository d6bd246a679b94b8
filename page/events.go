// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package page

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jongio/escapehatch/escape"
)

const (
	maxEventBytes = 1 << 10

	// limiterIdleTTL is how long an idle client limiter is kept.
	limiterIdleTTL = 10 * time.Minute
	// limiterSweepSize triggers a sweep of idle limiters.
	limiterSweepSize = 4096
)

var errRateLimited = errors.New("rate limit exceeded")

// validReasons lists what may accompany a phase event. "retry" marks a
// user-initiated return to redirecting.
var validReasons = map[string]bool{
	string(escape.ReasonNone):      true,
	string(escape.ReasonTimeout):   true,
	string(escape.ReasonExhausted): true,
	"retry":                        true,
}

// Copy outcomes reported by the page.
const (
	CopyOK     = "ok"
	CopyFailed = "failed"
)

// Event is a beacon sent by the page: either a phase change or the outcome
// of a copy.
type Event struct {
	LoadID string       `json:"loadId"`
	Phase  escape.Phase `json:"phase,omitempty"`
	Reason string       `json:"reason,omitempty"`
	Copy   string       `json:"copy,omitempty"`
}

// Validate checks the load ID and that exactly one of phase and copy is set.
func (e Event) Validate() error {
	if _, err := uuid.Parse(e.LoadID); err != nil {
		return fmt.Errorf("invalid loadId: %w", err)
	}

	switch {
	case e.Phase != "" && e.Copy != "":
		return errors.New("event must carry either phase or copy, not both")
	case e.Phase != "":
		if e.Phase != escape.PhaseRedirecting && e.Phase != escape.PhaseManual {
			return fmt.Errorf("unsupported phase %q", e.Phase)
		}
		if !validReasons[e.Reason] {
			return fmt.Errorf("unsupported reason %q", e.Reason)
		}
	case e.Copy != "":
		if e.Copy != CopyOK && e.Copy != CopyFailed {
			return fmt.Errorf("unsupported copy outcome %q", e.Copy)
		}
	default:
		return errors.New("event must carry phase or copy")
	}
	return nil
}

// Kind returns "phase" or "copy".
func (e Event) Kind() string {
	if e.Phase != "" {
		return "phase"
	}
	return "copy"
}

// Value returns the phase or copy outcome.
func (e Event) Value() string {
	if e.Phase != "" {
		return string(e.Phase)
	}
	return e.Copy
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore keeps one token bucket per client IP. A nil store allows
// everything.
type limiterStore struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	entries map[string]*limiterEntry
	now     func() time.Time
}

func newLimiterStore(perSecond float64, burst int) *limiterStore {
	if perSecond <= 0 {
		return nil
	}
	return &limiterStore{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		entries: make(map[string]*limiterEntry),
		now:     time.Now,
	}
}

func (s *limiterStore) allow(key string) bool {
	if s == nil {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok {
		if len(s.entries) >= limiterSweepSize {
			s.sweep(now)
		}
		entry = &limiterEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// sweep drops limiters idle for longer than limiterIdleTTL. Caller must hold
// mu.
func (s *limiterStore) sweep(now time.Time) {
	for key, entry := range s.entries {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(s.entries, key)
		}
	}
}

func (s *limiterStore) size() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// clientIP strips the port from RemoteAddr, which RealIP has already
// replaced with the forwarded address when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
