package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nexttalent_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// NotificationsCreated counts notification records by target role.
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexttalent_notifications_created_total",
			Help: "Total number of notification records created",
		},
		[]string{"role"},
	)

	// NotificationFailures counts advisory notification inserts that were dropped.
	NotificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nexttalent_notification_failures_total",
			Help: "Total number of notification inserts that failed and were dropped",
		},
	)

	// StatusTransitions counts workflow status changes by entity and target status.
	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexttalent_status_transitions_total",
			Help: "Total number of job and application status transitions",
		},
		[]string{"entity", "status"},
	)

	// UnreadPolls counts unread-count refreshes served by the badge poller.
	UnreadPolls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nexttalent_unread_polls_total",
			Help: "Total number of unread-count refreshes",
		},
	)
)
