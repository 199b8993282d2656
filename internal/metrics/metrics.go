// Package metrics defines prometheus metrics to expose
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pagesmith_api_generation_duration_seconds",
			Help:    "Total time taken for generations in seconds",
			Buckets: []float64{1, 2.5, 5, 10, 15, 20, 25, 30, 40, 50, 75, 100, 150, 200},
		},
		[]string{"model"},
	)

	TimeToFirstFragment = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pagesmith_api_time_to_first_fragment_seconds",
			Help:    "Time to first streamed fragment in seconds",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 15, 20, 25, 30, 40, 50, 75, 100},
		},
		[]string{"model"},
	)

	GenerationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagesmith_api_generation_count_total",
			Help: "Total number of generation requests processed",
		},
		[]string{"model", "status"},
	)

	CredentialProbeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagesmith_api_credential_probe_failures_total",
			Help: "Failed credential liveness probes",
		},
		[]string{"attempt"},
	)

	PublishCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagesmith_api_publish_count_total",
			Help: "Total number of publish requests processed",
		},
		[]string{"action", "status"},
	)

	RateLimitedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pagesmith_api_rate_limited_requests_total",
			Help: "Anonymous requests rejected by the rate limit",
		},
	)

	ResponseCodes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagesmith_api_status_code",
			Help: "Status Codes",
		},
		[]string{"path", "status_code"},
	)
)
