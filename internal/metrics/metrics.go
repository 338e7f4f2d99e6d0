package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// TenantResolutions counts resolver outcomes: domain, handle or miss.
	TenantResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_tenant_resolutions_total",
			Help: "Tenant resolution outcomes by match kind",
		},
		[]string{"outcome"},
	)

	// SectionsSkipped counts sections dropped because the active theme has
	// no renderer for their type.
	SectionsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_sections_skipped_total",
			Help: "Sections skipped during composition by section type",
		},
		[]string{"type"},
	)

	// TenantCacheHits and TenantCacheMisses track the tenant-by-domain cache.
	TenantCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_tenant_cache_hits_total",
			Help: "Tenant-by-domain cache hits",
		},
	)
	TenantCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_tenant_cache_misses_total",
			Help: "Tenant-by-domain cache misses",
		},
	)
)
