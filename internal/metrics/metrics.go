// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentdesk_http_requests_total",
			Help: "Total HTTP requests by method, path and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rentdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OrderTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentdesk_order_transitions_total",
			Help: "Order status transitions by target status and outcome.",
		},
		[]string{"target", "outcome"},
	)

	NotificationFeedSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rentdesk_notification_feed_size",
			Help: "Size of the derived notification feed after the last refresh.",
		},
	)

	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rentdesk_job_runs_total",
			Help: "Scheduled job runs by job name and outcome.",
		},
		[]string{"job", "outcome"},
	)
)
