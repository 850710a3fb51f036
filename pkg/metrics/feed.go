package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the feed composition HTTP handler
	FeedRequestLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "feed_request_latency_seconds",
		Help:    "Latency of the feed composition handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of feed pages served
	FeedRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_requests_total",
		Help: "Total number of feed page requests",
	})
)

func Init() {
	prometheus.MustRegister(
		FeedRequestLatency,
		FeedRequestsTotal,
	)
}
