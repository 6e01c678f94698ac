package relayer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// RequestDuration tracks upstream API latency per endpoint.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fusion_relayer_request_duration_seconds",
		Help:    "Duration of upstream swap network requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// RequestErrorsTotal tracks failed upstream requests.
	RequestErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_relayer_request_errors_total",
		Help: "Total number of failed upstream swap network requests",
	})

	// QuotesTotal tracks quotes fetched.
	QuotesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_relayer_quotes_total",
		Help: "Total number of quotes fetched",
	})

	// OrdersCreatedTotal tracks orders constructed upstream.
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_relayer_orders_created_total",
		Help: "Total number of orders created upstream",
	})

	// OrdersSubmittedTotal tracks orders submitted for execution.
	OrdersSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_relayer_orders_submitted_total",
		Help: "Total number of orders submitted upstream",
	})

	// SecretsSubmittedTotal tracks secrets revealed to the upstream network.
	SecretsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fusion_relayer_secrets_submitted_total",
		Help: "Total number of secrets submitted to escrows",
	})
)
