package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// reportDuration measures rollup computation per customer.
	// Labels: report (customer, summary, progress, dependency_tree)
	reportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pathfinder",
		Subsystem: "report",
		Name:      "duration_seconds",
		Help:      "Customer rollup computation latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"report"})
)
