// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package page

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jongio/escapehatch/escape"
	"github.com/jongio/escapehatch/uaclass"
)

var (
	pageLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escapehatch_page_loads_total",
			Help: "Page loads by classified environment and decision",
		},
		[]string{"platform", "host", "decision"},
	)

	pageEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escapehatch_page_events_total",
			Help: "Beacons received from served pages",
		},
		[]string{"kind", "value", "reason"},
	)

	pageEventsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escapehatch_page_events_rejected_total",
			Help: "Beacons rejected before recording",
		},
		[]string{"reason"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "escapehatch_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route", "code"},
	)
)

func recordPageLoad(env uaclass.Environment, decision escape.Decision) {
	host := string(env.Host)
	if host == "" {
		host = "none"
	}
	pageLoads.WithLabelValues(string(env.Platform), host, string(decision)).Inc()
}

func recordEvent(ev Event) {
	pageEvents.WithLabelValues(ev.Kind(), ev.Value(), ev.Reason).Inc()
}

func recordEventRejected(reason string) {
	pageEventsRejected.WithLabelValues(reason).Inc()
}

func recordRequest(method, route string, status int, d time.Duration) {
	httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
