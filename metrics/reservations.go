package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// ReservationMetrics counts booking admissions, updates, cancellations and
// availability repairs. A nil *ReservationMetrics is a no-op.
type ReservationMetrics struct {
	admissions    *prometheus.CounterVec
	updates       *prometheus.CounterVec
	cancellations *prometheus.CounterVec
	repairs       prometheus.Counter
}

// NewReservationMetrics registers the reservation metrics on the provided registerer.
func NewReservationMetrics(reg prometheus.Registerer) *ReservationMetrics {
	if reg == nil {
		return &ReservationMetrics{}
	}
	admissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_admissions_total",
		Help: "Booking requests by outcome.",
	}, []string{"outcome"})
	updates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_updates_total",
		Help: "Reservation change requests by outcome.",
	}, []string{"outcome"})
	cancellations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_cancellations_total",
		Help: "Cancellation requests by outcome.",
	}, []string{"outcome"})
	repairs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "table_availability_repairs_total",
		Help: "Table availability flags corrected by reconciliation.",
	})
	reg.MustRegister(admissions, updates, cancellations, repairs)
	return &ReservationMetrics{
		admissions:    admissions,
		updates:       updates,
		cancellations: cancellations,
		repairs:       repairs,
	}
}

// ObserveAdmission records the outcome of a booking request.
func (m *ReservationMetrics) ObserveAdmission(outcome string) {
	if m == nil || m.admissions == nil {
		return
	}
	m.admissions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveUpdate records the outcome of a request to change a booking.
func (m *ReservationMetrics) ObserveUpdate(outcome string) {
	if m == nil || m.updates == nil {
		return
	}
	m.updates.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveCancellation records the outcome of a cancellation request.
func (m *ReservationMetrics) ObserveCancellation(outcome string) {
	if m == nil || m.cancellations == nil {
		return
	}
	m.cancellations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// AddRepairs adds n corrected tables.
func (m *ReservationMetrics) AddRepairs(n int) {
	if m == nil || m.repairs == nil || n <= 0 {
		return
	}
	m.repairs.Add(float64(n))
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
