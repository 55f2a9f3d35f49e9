package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReservationsTotal counts reservation lifecycle transitions by outcome:
	// reserved, confirmed, released, insufficient.
	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_reservations_total",
			Help: "Total number of credit reservation operations by outcome",
		},
		[]string{"outcome"},
	)

	CreditsReserved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credits_reserved_total",
			Help: "Total credits reserved across all users",
		},
	)

	CreditsReleased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credits_released_total",
			Help: "Total credits restored to batches by releases",
		},
	)

	StaleReleased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stale_reservations_released_total",
			Help: "Total reservations force-released by the reaper",
		},
	)

	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_webhook_events_total",
			Help: "Total payment webhook events by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)
