package amizone

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "amidash_upstream_requests_total",
		Help: "Requests issued to the Amizone API by endpoint family and outcome.",
	}, []string{"endpoint", "outcome"})

	upstreamSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "amidash_upstream_request_seconds",
		Help:    "Duration of Amizone API requests by endpoint family.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)

func observeCall(family string, start time.Time, ok bool) {
	upstreamSeconds.WithLabelValues(family).Observe(time.Since(start).Seconds())
	if !ok {
		upstreamCalls.WithLabelValues(family, "network").Inc()
	}
}

func countOutcome(family, outcome string) {
	upstreamCalls.WithLabelValues(family, outcome).Inc()
}
