package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts API calls by method and final status ("network" when no response).
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubinho_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "status"},
	)

	// RequestLatency tracks API call latency, retries included.
	RequestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clubinho_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// RetriesTotal counts requests replayed after a credential refresh.
	RetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubinho_api_retries_total",
			Help: "Total number of requests replayed after a refresh",
		},
	)

	// RefreshesTotal counts refresh exchanges hitting the network, by result.
	RefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubinho_session_refreshes_total",
			Help: "Total number of refresh token exchanges",
		},
		[]string{"result"},
	)

	// ClassifiedErrorsTotal counts classified failures by category.
	ClassifiedErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubinho_api_errors_total",
			Help: "Total number of classified API errors",
		},
		[]string{"category"},
	)
)
