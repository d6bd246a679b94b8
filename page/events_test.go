// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package page

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/escapehatch/config"
)

func postEvent(s *Server, body, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if ip != "" {
		req.Header.Set("X-Real-IP", ip)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestEvents(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"phase", `{"loadId":"` + testLoadID + `","phase":"redirecting"}`, http.StatusNoContent},
		{"manual timeout", `{"loadId":"` + testLoadID + `","phase":"manual","reason":"timeout"}`, http.StatusNoContent},
		{"retry", `{"loadId":"` + testLoadID + `","phase":"redirecting","reason":"retry"}`, http.StatusNoContent},
		{"copy ok", `{"loadId":"` + testLoadID + `","copy":"ok"}`, http.StatusNoContent},
		{"copy failed", `{"loadId":"` + testLoadID + `","copy":"failed"}`, http.StatusNoContent},
		{"bad json", `{"loadId":`, http.StatusBadRequest},
		{"bad load id", `{"loadId":"nope","phase":"manual"}`, http.StatusBadRequest},
		{"empty", `{"loadId":"` + testLoadID + `"}`, http.StatusBadRequest},
		{"both", `{"loadId":"` + testLoadID + `","phase":"manual","copy":"ok"}`, http.StatusBadRequest},
		{"unknown phase", `{"loadId":"` + testLoadID + `","phase":"immediate"}`, http.StatusBadRequest},
		{"unknown reason", `{"loadId":"` + testLoadID + `","phase":"manual","reason":"bored"}`, http.StatusBadRequest},
		{"unknown copy", `{"loadId":"` + testLoadID + `","copy":"maybe"}`, http.StatusBadRequest},
		{"oversized", `{"loadId":"` + testLoadID + `","phase":"manual","reason":"` + strings.Repeat("x", 2048) + `"}`, http.StatusBadRequest},
	}

	s := newTestServer(t, func(c *config.Config) { c.Events.RateLimit = 0 }, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postEvent(s, tt.body, "").Code)
		})
	}
}

func TestEvents_RateLimited(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.Events.RateLimit = 0.001
		c.Events.Burst = 2
	}, nil)
	body := `{"loadId":"` + testLoadID + `","copy":"ok"}`

	assert.Equal(t, http.StatusNoContent, postEvent(s, body, "198.51.100.7").Code)
	assert.Equal(t, http.StatusNoContent, postEvent(s, body, "198.51.100.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, postEvent(s, body, "198.51.100.7").Code)

	assert.Equal(t, http.StatusNoContent, postEvent(s, body, "198.51.100.8").Code, "limits are per client")
}

func TestEvents_GetNotAllowed(t *testing.T) {
	rec := get(t, newTestServer(t, nil, nil), "/api/events", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestLimiterStore_Sweep(t *testing.T) {
	store := newLimiterStore(1, 1)
	require.NotNil(t, store)

	now := time.Unix(0, 0)
	store.now = func() time.Time { return now }

	for i := 0; i < limiterSweepSize; i++ {
		store.allow(strconv.Itoa(i))
	}
	assert.Equal(t, limiterSweepSize, store.size())

	now = now.Add(limiterIdleTTL + time.Second)
	assert.True(t, store.allow("fresh"))
	assert.Equal(t, 1, store.size(), "idle limiters are swept")
}

func TestLimiterStore_Disabled(t *testing.T) {
	store := newLimiterStore(0, 10)
	assert.Nil(t, store)
	assert.True(t, store.allow("anyone"))
	assert.Zero(t, store.size())
}

func TestEventKindValue(t *testing.T) {
	phase := Event{LoadID: testLoadID, Phase: "manual"}
	assert.Equal(t, "phase", phase.Kind())
	assert.Equal(t, "manual", phase.Value())

	copied := Event{LoadID: testLoadID, Copy: CopyOK}
	assert.Equal(t, "copy", copied.Kind())
	assert.Equal(t, "ok", copied.Value())
}
