// Package metrics defines and registers all custom Prometheus metrics for the
// EV service API. It is the single source of truth for metric names, labels,
// and help strings.
//
// promauto registers everything with the default registry at init time; the
// /metrics endpoint exposed by the router serves that registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "evservice"

// ── Authentication metrics ────────────────────────────────────────────────────

// AuthAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "disabled", or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Appointment metrics ───────────────────────────────────────────────────────

// AppointmentsBookedTotal counts successfully booked appointments.
// Label:
//   - package: the service package ID, or "custom" for ad-hoc service lists
var AppointmentsBookedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_booked_total",
		Help:      "Total number of appointments booked, by service package.",
	},
	[]string{"package"},
)

// BookingConflictsTotal counts bookings rejected because the requested slot
// was already held.
var BookingConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_conflicts_total",
		Help:      "Total number of bookings rejected due to a slot conflict.",
	},
)

// StatusTransitionsTotal counts appointment status changes.
// Labels:
//   - from: the previous status
//   - to: the new status
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of appointment status transitions applied.",
	},
	[]string{"from", "to"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationQueueDepth tracks the current number of notifications waiting
// in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationsProcessedTotal counts notifications handed to the sender.
// Label:
//   - status: the appointment status the notification announces
var NotificationsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_processed_total",
		Help:      "Total number of customer notifications processed, by appointment status.",
	},
	[]string{"status"},
)
