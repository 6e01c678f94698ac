package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// ActiveMonitors tracks monitors currently polling.
	ActiveMonitors = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fusion_monitor_active",
		Help: "Number of orders currently being monitored",
	})

	// PollsTotal tracks poll iterations.
	PollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_monitor_polls_total",
		Help: "Total number of monitor poll iterations",
	})

	// PollErrorsTotal tracks failed poll iterations.
	PollErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_monitor_poll_errors_total",
		Help: "Total number of failed monitor poll iterations",
	})

	// SecretsRevealedTotal tracks secrets revealed to escrows.
	SecretsRevealedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_monitor_secrets_revealed_total",
		Help: "Total number of secrets revealed to claimable escrows",
	})

	// TerminalStatusTotal tracks monitors finishing, by terminal status.
	TerminalStatusTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fusion_monitor_terminal_total",
		Help: "Total number of monitored orders reaching a terminal status",
	}, []string{"status"})

	// EventNudgesTotal tracks polls triggered early by the event feed.
	EventNudgesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_monitor_event_nudges_total",
		Help: "Total number of polls triggered by upstream order events",
	})
)
