package kafka

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Publish outcomes, labelled by topic and event type.
var (
	eventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_events_published_total",
			Help: "Events written to Kafka",
		},
		[]string{"topic", "event_type"},
	)

	eventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_event_publish_failures_total",
			Help: "Events Kafka did not accept",
		},
		[]string{"topic", "event_type"},
	)

	eventPublishSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "storefront_event_publish_seconds",
			Help: "Time spent writing one event, including broker acknowledgement",
			// Synchronous writes wait for BatchTimeout before flushing.
			Buckets: []float64{.005, .01, .02, .05, .1, .25, .5, 1, 5},
		},
		[]string{"topic", "event_type"},
	)
)
