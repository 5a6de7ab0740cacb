// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	timersStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lyfestyler_timers_started_total",
		Help: "Total number of event timers started",
	})

	timersStopped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lyfestyler_timers_stopped_total",
		Help: "Total number of event timers stopped",
	})

	eventDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lyfestyler_event_duration_seconds",
		Help:    "Actual duration of stopped events in seconds",
		Buckets: []float64{60, 300, 900, 1800, 3600, 7200, 14400, 28800},
	})

	codesSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lyfestyler_verification_codes_swept_total",
		Help: "Total number of expired verification codes removed by the sweeper",
	})

	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lyfestyler_auth_attempts_total",
		Help: "Authentication attempts by operation and outcome",
	}, []string{"op", "outcome"}) // op=register|verify|login, outcome=success|failure
)

// RecordTimerStarted counts a successful start.
func RecordTimerStarted() {
	timersStarted.Inc()
}

// RecordTimerStopped counts a successful stop and observes its duration.
// Negative durations are not observed.
func RecordTimerStopped(durationSeconds int64) {
	timersStopped.Inc()
	if durationSeconds >= 0 {
		eventDuration.Observe(float64(durationSeconds))
	}
}

// RecordCodesSwept adds n removed verification codes.
func RecordCodesSwept(n int) {
	if n > 0 {
		codesSwept.Add(float64(n))
	}
}

// RecordAuth counts an auth operation outcome.
func RecordAuth(op string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	authAttempts.WithLabelValues(op, outcome).Inc()
}
