package prepared

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// PutsTotal tracks records inserted.
	PutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_prepared_puts_total",
		Help: "Total number of preparation records stored",
	})

	// ConsumesTotal tracks successful consumptions.
	ConsumesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_prepared_consumes_total",
		Help: "Total number of preparation records consumed",
	})

	// ConsumeMissesTotal tracks consume calls that found nothing.
	ConsumeMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_prepared_consume_misses_total",
		Help: "Total number of consume calls for missing or already-consumed records",
	})

	// ExpiriesTotal tracks records evicted by TTL without consumption.
	ExpiriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_prepared_expiries_total",
		Help: "Total number of preparation records evicted unconsumed",
	})

	// RecordsGauge tracks live records in the in-memory store.
	RecordsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fusion_prepared_records",
		Help: "Current number of live preparation records (memory store only)",
	})
)
