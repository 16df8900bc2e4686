package transport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsCompleted tracks finished logical calls by method and
	// final status ("error" when no response was ever received)
	requestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nordpay_requests_total",
			Help: "Completed API calls by HTTP method and final status",
		},
		[]string{"method", "status"},
	)

	// requestRetries tracks retry attempts beyond the first try
	requestRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nordpay_retries_total",
			Help: "Retry attempts by HTTP method",
		},
		[]string{"method"},
	)

	// requestDuration tracks end-to-end call duration including backoff
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nordpay_request_duration_seconds",
			Help:    "End-to-end API call duration including retries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)
