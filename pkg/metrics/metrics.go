package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	FeedComposeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cur8tr_feed_compose_latency_seconds",
		Help:    "Latency of activity feed composition",
		Buckets: prometheus.DefBuckets,
	})

	// Feeds served, labelled by path taken: anonymous, solo or blended.
	FeedComposeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cur8tr_feed_compose_total",
		Help: "Total activity feeds composed",
	}, []string{"mode"})

	FeedItems = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cur8tr_feed_items",
		Help:    "Number of recommendations returned per feed",
		Buckets: []float64{0, 1, 5, 10, 15, 20, 25, 50},
	})

	RadiusSearchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cur8tr_radius_search_latency_seconds",
		Help:    "Latency of map radius search",
		Buckets: prometheus.DefBuckets,
	})

	RadiusCandidates = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cur8tr_radius_candidates_total",
		Help: "Located recommendations scanned by radius search",
	})

	RadiusMatched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cur8tr_radius_matched_total",
		Help: "Recommendations kept by radius search",
	})

	// Outcome is one of hit, miss, not_found, error, open.
	GeocodeRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cur8tr_geocode_requests_total",
		Help: "Geocoding lookups by outcome",
	}, []string{"outcome"})

	// 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cur8tr_circuit_breaker_state",
		Help: "Circuit breaker state per upstream",
	}, []string{"name"})
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			FeedComposeLatency,
			FeedComposeTotal,
			FeedItems,
			RadiusSearchLatency,
			RadiusCandidates,
			RadiusMatched,
			GeocodeRequests,
			CircuitBreakerState,
		)
	})
}
