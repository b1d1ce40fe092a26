// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_received_total",
			Help: "Total number of inbound text messages accepted for processing",
		},
		[]string{"channel"},
	)

	Decisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_decisions_total",
			Help: "Gating decisions by action and classified intent",
		},
		[]string{"action", "intent"},
	)

	TrustScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bot_trust_score",
			Help:    "Distribution of computed trust scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	WebhookRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_webhook_rejected_total",
			Help: "Webhook requests rejected before processing",
		},
		[]string{"reason"},
	)

	EventsDeduplicated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_events_deduplicated_total",
			Help: "Webhook events skipped as redeliveries",
		},
	)

	NotificationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_notification_failures_total",
			Help: "Admin notification channel failures",
		},
		[]string{"channel"},
	)
)
