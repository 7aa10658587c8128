package rpcclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "datastorage",
		Subsystem: "rpc",
		Name:      "requests_total",
		Help:      "JSON-RPC requests issued, by method and outcome",
	}, []string{"method", "status"})

	rpcLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "datastorage",
		Subsystem: "rpc",
		Name:      "request_duration_seconds",
		Help:      "JSON-RPC request latency",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"method"})

	fetchedAccounts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "datastorage",
		Subsystem: "rpc",
		Name:      "accounts_fetched_total",
		Help:      "Accounts returned by the node, missing accounts excluded",
	})
)

// observe records the outcome of one request started by the caller.
func observe(method string, timer *prometheus.Timer, err error) {
	timer.ObserveDuration()
	status := "ok"
	if err != nil {
		status = "error"
	}
	rpcRequests.WithLabelValues(method, status).Inc()
}
