// Package metrics defines all custom Prometheus metrics for the marketplace
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics are registered with the default registry at import time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts successfully created orders.
// Label:
//   - payment_type: the payment method chosen at checkout (e.g. "cash")
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by payment type.",
	},
	[]string{"payment_type"},
)

// OrderTransitionsTotal counts applied order status transitions.
// Label:
//   - to: the new status
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of order status transitions applied.",
	},
	[]string{"to"},
)

// CheckoutCartClearFailuresTotal counts checkouts where the order was written
// but the follow-up cart clear failed. The two writes are separate remote
// calls; this counter makes the gap observable.
var CheckoutCartClearFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_cart_clear_failures_total",
		Help:      "Checkouts that created an order but failed to clear the cart.",
	},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartMutationsTotal counts cart mutations.
// Label:
//   - op: "add", "update", "remove" or "clear"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)

// CartVersionConflictsTotal counts optimistic-concurrency retries on cart
// saves. A steadily rising rate means contention on single carts.
var CartVersionConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_version_conflicts_total",
		Help:      "Cart saves rejected by the version check and retried.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ProductCacheTotal counts product cache lookups.
// Label:
//   - result: "hit" or "miss"
var ProductCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_cache_total",
		Help:      "Total number of product cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts push notification deliveries.
// Label:
//   - result: "sent", "skipped" or "error"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of push notification jobs, by delivery result.",
	},
	[]string{"result"},
)

// ── Subscription metrics ──────────────────────────────────────────────────────

// ActiveSubscriptions tracks currently open watch streams.
// Label:
//   - resource: "cart", "order" or "product"
var ActiveSubscriptions = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_subscriptions",
		Help:      "Number of currently open change streams, by resource.",
	},
	[]string{"resource"},
)
