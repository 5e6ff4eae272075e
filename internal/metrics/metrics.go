// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersCreated counts successfully placed orders.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_created_total",
		Help: "Number of orders placed.",
	})

	// OrderStatusChanges counts status transitions by target status.
	OrderStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_order_status_changes_total",
		Help: "Number of order status transitions.",
	}, []string{"status"})

	// CartMutations counts cart operations by kind.
	CartMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_mutations_total",
		Help: "Number of cart mutations.",
	}, []string{"operation"})

	// CheckoutDuration observes end-to-end checkout latency.
	CheckoutDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_checkout_duration_seconds",
		Help:    "Time spent placing an order.",
		Buckets: prometheus.DefBuckets,
	})

	// CatalogFilterRuns counts filter pipeline executions.
	CatalogFilterRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_catalog_filter_runs_total",
		Help: "Number of catalog filter pipeline executions.",
	})
)
