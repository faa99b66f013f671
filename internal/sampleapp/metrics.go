package sampleapp

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sampleapp",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by endpoint and status code",
		},
		[]string{"endpoint", "code"},
	)

	storageOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sampleapp",
			Subsystem: "storage",
			Name:      "operations_total",
			Help:      "Total number of storage operations by type and result",
		},
		[]string{"operation", "result"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, storageOpsTotal)
}

func observeStorage(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	storageOpsTotal.WithLabelValues(operation, result).Inc()
}
