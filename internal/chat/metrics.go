package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	turnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "focusflow",
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Conversation turns by outcome (delivered, failed, noop).",
		},
		[]string{"outcome"},
	)

	modelFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "focusflow",
			Subsystem: "chat",
			Name:      "model_failures_total",
			Help:      "Model invocations that ended in a synthesized fallback reply.",
		},
	)
)
