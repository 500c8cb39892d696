package boarding

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	boardingAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boarding_attempts_total",
			Help: "Total number of boarding attempts dispatched to gateways",
		},
		[]string{"gateway", "kind"},
	)

	boardingFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boarding_failures_total",
			Help: "Total number of failed boarding attempts",
		},
		[]string{"gateway", "kind"},
	)

	boardingDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boarding_dropped_total",
			Help: "Boarding jobs dropped because the worker queue was full",
		},
	)

	boardingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boarding_duration_seconds",
			Help:    "Duration of boarding attempts in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"gateway", "kind"},
	)
)
