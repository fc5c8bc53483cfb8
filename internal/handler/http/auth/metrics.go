package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total token requests by result",
		},
		[]string{"result"}, // success | failure
	)

	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Token request duration",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Bearer token check duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	unauthorizedAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unauthorized_attempts_total",
			Help: "Requests rejected for a missing or invalid token by method",
		},
		[]string{"method"},
	)
)

// RecordAuthRequest records a token request outcome.
func RecordAuthRequest(result string) {
	authRequestsTotal.WithLabelValues(result).Inc()
}

// RecordAuthDuration records a token request duration.
func RecordAuthDuration(durationSeconds float64) {
	authDuration.Observe(durationSeconds)
}

// RecordAuthzCheckDuration records a bearer token check duration.
func RecordAuthzCheckDuration(durationSeconds float64) {
	authzCheckDuration.Observe(durationSeconds)
}

// RecordUnauthorizedAttempt records a rejected request.
func RecordUnauthorizedAttempt(method string) {
	unauthorizedAttempts.WithLabelValues(method).Inc()
}
