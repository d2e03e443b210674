package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// reloads counts catalog loads. Labels: result (ok, fallback)
	reloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pathfinder",
		Subsystem: "catalog",
		Name:      "loads_total",
		Help:      "Total catalog loads by result",
	}, []string{"result"})

	fallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pathfinder",
		Subsystem: "catalog",
		Name:      "fallback_total",
		Help:      "Total loads that served the bundled default catalog",
	})

	customDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pathfinder",
		Subsystem: "catalog",
		Name:      "custom_dropped_total",
		Help:      "Total custom catalog entries dropped during materialization",
	})

	questions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "pathfinder",
		Subsystem: "catalog",
		Name:      "questions",
		Help:      "Number of questions in the published catalog",
	})
)
