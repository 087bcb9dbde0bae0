// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_processed_total",
			Help: "Total number of inbound messages processed, by outcome",
		},
		[]string{"outcome"},
	)

	IntentsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_intents_classified_total",
			Help: "Total number of intents produced by the classifier, by kind",
		},
		[]string{"kind"},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_upstream_requests_total",
			Help: "Total number of requests to external APIs, by api and status",
		},
		[]string{"api", "status"},
	)

	MessageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "bot_message_duration_seconds",
			Help: "Duration of end-to-end message handling in seconds",
		},
		[]string{"outcome"},
	)
)
