package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sharent",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sharent",
			Name:      "bookings_created_total",
			Help:      "Bookings accepted by the engine.",
		},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sharent",
			Name:      "booking_transitions_total",
			Help:      "Booking status transitions by outcome.",
		},
		[]string{"status"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, bookingTransitions)
	})
}

// IncHTTP increments the request counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncBookingCreated counts a successfully created booking.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncBookingTransition counts an applied status transition.
func IncBookingTransition(status string) {
	bookingTransitions.WithLabelValues(status).Inc()
}
