package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RentalOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_ops_total",
			Help: "Rental state machine operations by outcome",
		},
		[]string{"op", "outcome"}, // op: rent|return|charge, outcome: ok|rejected|error
	)

	RentConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rent_conflicts_total",
			Help: "Rent attempts that lost the battery availability race",
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Pending audit jobs in the worker pool",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RentalOps)
	prometheus.MustRegister(RentConflicts)
	prometheus.MustRegister(WorkerQueueDepth)
}
