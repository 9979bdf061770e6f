// Package metrics defines and registers all custom Prometheus metrics for the
// Connectly backend. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "connectly"

// MessagesSentTotal counts chat messages accepted for persistence.
var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of chat messages persisted.",
	},
)

// NotificationsDeliveredTotal counts notifications appended to user documents.
// Label:
//   - type: the notification type (e.g. "message", "join_request")
var NotificationsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Total number of notifications persisted, by type.",
	},
	[]string{"type"},
)

// NotificationsErrorsTotal counts notification deliveries that failed. Fan-out
// failures never roll back the triggering action; this counter is how they
// stay visible.
var NotificationsErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_errors_total",
		Help:      "Total number of notification deliveries that failed.",
	},
)

// NotificationQueueDepth tracks the events waiting in each fan-out worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of deliveries pending in each fan-out worker channel.",
	},
	[]string{"worker_id"},
)

// RealtimeConnections tracks the number of live websocket connections.
var RealtimeConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "realtime_connections",
		Help:      "Current number of live websocket connections.",
	},
)

// RealtimeDropsTotal counts events that could not be delivered in real time.
// Label:
//   - reason: "offline" (no live connection) or "slow_consumer" (full buffer)
var RealtimeDropsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_drops_total",
		Help:      "Total number of realtime events dropped, by reason.",
	},
	[]string{"reason"},
)
