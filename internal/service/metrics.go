package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Checkout outcomes recorded in storefront_checkout_requests_total.
const (
	OutcomePlaced           = "placed"
	OutcomeInvalidRequest   = "invalid_request"
	OutcomeMethodNotAllowed = "method_not_allowed"
)

var checkoutRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_checkout_requests_total",
		Help: "Checkout requests by outcome",
	},
	[]string{"outcome"},
)

var orderEventFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "storefront_order_event_failures_total",
		Help: "order.placed events that could not be published",
	},
)
