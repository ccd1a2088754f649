package airtable

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK        = "ok"
	outcomeStatus    = "status_error"
	outcomeTransport = "transport_error"
	outcomeDecode    = "decode_error"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plats_upstream_requests_total",
			Help: "Total number of record store requests by table and outcome",
		},
		[]string{"table", "outcome"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plats_upstream_request_duration_seconds",
			Help:    "Record store request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table"},
	)
)

func observe(table, outcome string, start time.Time) {
	upstreamRequestsTotal.WithLabelValues(table, outcome).Inc()
	upstreamRequestDuration.WithLabelValues(table).Observe(time.Since(start).Seconds())
}
