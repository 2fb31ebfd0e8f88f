// Package metrics defines and registers all custom Prometheus metrics for the
// travel booking API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "travel"

// ── Availability metrics ──────────────────────────────────────────────────────

// AvailabilityQueriesTotal counts availability searches.
// Label:
//   - result: "available", "none", "invalid" or "error"
var AvailabilityQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "availability_queries_total",
		Help:      "Total number of available-destination searches, by outcome.",
	},
	[]string{"result"},
)

// AvailableDestinationsReturned observes how many destinations a successful
// search returned.
var AvailableDestinationsReturned = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "available_destinations_returned",
		Help:      "Number of destinations returned by successful availability searches.",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
	},
)

// UnavailableDatesLookupsTotal counts unavailable-date lookups.
// Label:
//   - distinct: "true" or "false"
var UnavailableDatesLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unavailable_dates_lookups_total",
		Help:      "Total number of unavailable-date lookups.",
	},
	[]string{"distinct"},
)

// ── Reservation metrics ───────────────────────────────────────────────────────

// ReservationsCreatedTotal counts stored reservations.
var ReservationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_created_total",
		Help:      "Total number of reservations created.",
	},
)

// ReservationConflictsTotal counts rejected bookings.
// Label:
//   - reason: "overlap" (dates taken) or "busy" (lock not acquired)
var ReservationConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservation_conflicts_total",
		Help:      "Total number of reservation requests rejected by a conflict.",
	},
	[]string{"reason"},
)

// ── Destination metrics ───────────────────────────────────────────────────────

// DestinationChangesTotal counts admin writes to destinations.
// Label:
//   - op: "create", "update" or "delete"
var DestinationChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "destination_changes_total",
		Help:      "Total number of destination writes, by operation.",
	},
	[]string{"op"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registered users.",
	},
)
