package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cardstore"

// Notification outcomes.
const (
	OutcomeDelivered = "delivered"
	OutcomeDropped   = "dropped"
	OutcomeRetry     = "retry"
)

var (
	NotificationsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_processed_total",
			Help:      "Notifications handled by the drain loop, by outcome",
		},
		[]string{"audience", "type", "outcome"},
	)

	NotificationsPending = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notifications_pending",
			Help:      "Pending notifications seen on the last poll",
		},
		[]string{"audience"},
	)

	NotificationsEnqueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_enqueued_total",
			Help:      "Notifications written to the queue",
		},
		[]string{"type"},
	)

	OrderTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Orders entering a status",
		},
		[]string{"status"},
	)

	ReservationConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_conflicts_total",
			Help:      "Reservations refused because the group had no unit left",
		},
	)

	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_requests_total",
			Help:      "Bot API calls by method and result",
		},
		[]string{"method", "result"},
	)
)

func RecordNotification(audience, typ, outcome string) {
	NotificationsProcessed.WithLabelValues(audience, typ, outcome).Inc()
}
