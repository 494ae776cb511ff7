package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrderFetchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_order_fetches_total",
		Help: "Total number of order list refreshes",
	})

	OrderFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_order_fetch_failures_total",
		Help: "Total number of failed order list refreshes",
	})

	OrderFetchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_order_fetch_latency_seconds",
		Help:    "Latency of order list refreshes including product resolution",
		Buckets: prometheus.DefBuckets,
	})

	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Total number of orders placed through the storefront",
	})

	OrdersPlacedFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_orders_placed_failed_total",
		Help: "Total number of failed order placements",
	}, []string{"reason"})

	ProductRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_product_refreshes_total",
		Help: "Total number of product list refreshes",
	})

	ProductRefreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_product_refresh_failures_total",
		Help: "Total number of failed product list refreshes",
	})

	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_products_created_total",
		Help: "Total number of products created through the storefront",
	})

	ProductResolvesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_product_resolves_total",
		Help: "Total number of product lookups during order display assembly",
	})

	ProductResolveCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_product_resolve_cache_hits_total",
		Help: "Product lookups served from the per-refresh cache",
	})

	ProductResolveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_product_resolve_failures_total",
		Help: "Product lookups that fell back to the error sentinel",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
