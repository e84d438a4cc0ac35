package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesSeen counts messages processed in bound bar channels.
	MessagesSeen = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barkeep_messages_seen_total",
		Help: "Total number of bar-channel messages processed",
	})

	// Pours counts drinks granted, labeled by kind (welcome, pour, gift, regular).
	Pours = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barkeep_pours_total",
		Help: "Total number of drinks granted",
	}, []string{"kind"})

	// DuplicatePours counts draws that landed on an already-owned drink.
	DuplicatePours = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barkeep_duplicate_pours_total",
		Help: "Total number of draws that hit an already-owned drink",
	})

	// AIFailures counts failed completion calls.
	AIFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barkeep_ai_failures_total",
		Help: "Total number of failed AI completion calls",
	})

	// AIDuration observes completion call latency.
	AIDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "barkeep_ai_request_duration_seconds",
		Help:    "AI completion call latency in seconds",
		Buckets: prometheus.DefBuckets,
	})
)
