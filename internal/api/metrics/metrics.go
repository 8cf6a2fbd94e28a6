// Package metrics defines the custom Prometheus metrics of the WhatsApp
// integration API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry on package init through promauto
// and are served by the echoprometheus handler on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wa_integration"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthOperationsTotal counts auth operations.
// Labels:
//   - operation: "register", "login", "forgot_password", "reset_password"
//   - result: "success" or the client-facing failure class (e.g. "invalid_credentials")
var AuthOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_operations_total",
		Help:      "Total number of auth operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Outbound messaging metrics ───────────────────────────────────────────────

// MessagesSentTotal counts WhatsApp send attempts.
// Label:
//   - result: "success" or "error"
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of WhatsApp send attempts, by result.",
	},
	[]string{"result"},
)

// SendDuration measures how long the WhatsApp session takes to accept a message.
var SendDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "send_duration_seconds",
		Help:      "Duration of a single WhatsApp send through the browser session.",
		Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 45},
	},
)

// ── Inbound metrics ──────────────────────────────────────────────────────────

// InboundProcessedTotal counts inbound messages handled by the dispatcher.
// Label:
//   - result: "success" or "error"
var InboundProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inbound_processed_total",
		Help:      "Total number of inbound WhatsApp messages processed, by result.",
	},
	[]string{"result"},
)

// InboundDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped), "miss" (new message) or "error"
var InboundDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inbound_dedup_total",
		Help:      "Total number of inbound deduplication checks, by result.",
	},
	[]string{"result"},
)

// InboundQueueDepth tracks the number of inbound messages waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var InboundQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inbound_queue_depth",
		Help:      "Current number of inbound messages pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// InboundProcessingDuration measures how long one inbound message takes from dequeue to persistence.
var InboundProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "inbound_processing_duration_seconds",
		Help:      "Duration of inbound message processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
