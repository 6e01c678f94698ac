package swap

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// PreparesTotal tracks successful prepare calls.
	PreparesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_swap_prepares_total",
		Help: "Total number of orders prepared",
	})

	// SubmitsTotal tracks successful submissions.
	SubmitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_swap_submits_total",
		Help: "Total number of signed orders submitted",
	})

	// RejectsTotal tracks rejected submissions by error kind.
	RejectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fusion_swap_rejects_total",
		Help: "Total number of rejected prepare/submit requests",
	}, []string{"kind"})
)
