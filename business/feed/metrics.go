package feed

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ComposeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_compose_requests_total",
			Help: "Count of feed composition requests by intent.",
		},
		[]string{"intent"},
	)

	ComposeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "feed_compose_duration_seconds",
		Help:    "Time spent composing one page of carousel sections.",
		Buckets: prometheus.DefBuckets,
	})

	CampaignFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_campaign_fallbacks_total",
		Help: "How many compositions ran without campaign data.",
	})

	PreferenceEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_preference_events_total",
			Help: "Count of recorded preference interactions by event type.",
		},
		[]string{"event_type"},
	)
)

func init() {
	prometheus.MustRegister(
		ComposeRequestsTotal,
		ComposeDuration,
		CampaignFallbacksTotal,
		PreferenceEventsTotal,
	)
}
