package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiodesk_bookings_created_total",
			Help: "Bookings created, by booking type",
		},
		[]string{"booking_type"},
	)

	LifecycleTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiodesk_booking_transitions_total",
			Help: "Booking lifecycle operations, by operation and resulting status",
		},
		[]string{"operation", "status"},
	)

	PaymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiodesk_payments_recorded_total",
			Help: "Payment journal entries appended, by type",
		},
		[]string{"type"},
	)

	PaymentAmount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiodesk_payment_amount_rupees_total",
			Help: "Total journaled amount in rupees, by type",
		},
		[]string{"type"},
	)

	CodeConflictRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "studiodesk_booking_code_conflicts_total",
			Help: "Booking code collisions that triggered a retry",
		},
	)
)

// RecordPayment tracks one journal append.
func RecordPayment(paymentType string, amount int64) {
	PaymentsRecorded.WithLabelValues(paymentType).Inc()
	PaymentAmount.WithLabelValues(paymentType).Add(float64(amount))
}
