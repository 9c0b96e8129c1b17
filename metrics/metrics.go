// Package metrics provides Prometheus metrics for the collateral oracle.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the oracle's collectors.
	Registry = prometheus.NewRegistry()

	// FeedRegistrationsTotal counts registry mutations by outcome.
	FeedRegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collateral_oracle",
			Name:      "feed_registrations_total",
			Help:      "Total number of addPriceFeed calls by result",
		},
		[]string{"result"},
	)

	// ValuationsTotal counts collateral valuations by outcome.
	ValuationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collateral_oracle",
			Name:      "valuations_total",
			Help:      "Total number of collateral valuations by result",
		},
		[]string{"result"},
	)

	// FeedReadDuration observes the latency of reading a feed.
	FeedReadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "collateral_oracle",
			Name:      "feed_read_duration_seconds",
			Help:      "Duration of price feed reads",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
	)

	// HTTPRequestsTotal counts HTTP requests by route and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "collateral_oracle",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	Registry.MustRegister(
		FeedRegistrationsTotal,
		ValuationsTotal,
		FeedReadDuration,
		HTTPRequestsTotal,
	)
}

// Handler exposes the oracle's collectors.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
