package remote

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK          = "ok"
	outcomeAPIError    = "api_error"
	outcomeUnreachable = "unreachable"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vacafacil_api_requests_total",
		Help: "Total de requisições à API por método e desfecho.",
	}, []string{"method", "outcome"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vacafacil_api_request_duration_seconds",
		Help:    "Duração das requisições à API.",
		Buckets: prometheus.DefBuckets,
	})
)

func observeRequest(method, outcome string, elapsed time.Duration) {
	requestsTotal.WithLabelValues(method, outcome).Inc()
	requestDuration.Observe(elapsed.Seconds())
}
