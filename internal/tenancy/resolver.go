package tenancy

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/openshelf/storefront/internal/cache"
	"github.com/openshelf/storefront/internal/domain"
	"github.com/openshelf/storefront/internal/metrics"
	"github.com/openshelf/storefront/internal/store"
)

// ErrNoTenant reports that neither the host nor the path matched an active
// tenant. It is a normal, representable outcome: callers decide whether an
// unresolved tenant is fatal for the current route.
var ErrNoTenant = errors.New("no tenant resolved")

// Resolver determines the active tenant for an inbound request. Exact host
// match against the domain table wins; otherwise the first non-reserved path
// segment is tried as a tenant handle.
type Resolver struct {
	tenants  domain.TenantStore
	cache    cache.TenantCache
	cacheTTL time.Duration
	reserved map[string]struct{}
	logger   *zap.Logger
}

func NewResolver(tenants domain.TenantStore, c cache.TenantCache, reserved []string, cacheTTL time.Duration, logger *zap.Logger) *Resolver {
	rs := make(map[string]struct{}, len(reserved))
	for _, s := range reserved {
		rs[strings.ToLower(s)] = struct{}{}
	}
	return &Resolver{
		tenants:  tenants,
		cache:    c,
		cacheTTL: cacheTTL,
		reserved: rs,
		logger:   logger,
	}
}

// Resolve returns the active tenant for (host, path), or ErrNoTenant.
// Data-access failures are returned as-is; absence never aborts the caller's
// pipeline.
func (r *Resolver) Resolve(ctx context.Context, host, path string) (*domain.Tenant, error) {
	if h := normalizeHost(host); h != "" {
		t, err := r.byDomain(ctx, h)
		if err != nil {
			return nil, err
		}
		if t.IsActive() {
			metrics.TenantResolutions.WithLabelValues("domain").Inc()
			return t, nil
		}
	}

	if handle := r.candidateHandle(path); handle != "" {
		t, err := r.tenants.GetByHandle(ctx, handle)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if t.IsActive() {
			metrics.TenantResolutions.WithLabelValues("handle").Inc()
			return t, nil
		}
	}

	metrics.TenantResolutions.WithLabelValues("miss").Inc()
	return nil, ErrNoTenant
}

// byDomain consults the cache first; only active tenants are cached, so a
// stale entry can never resurrect a suspended store. Returns a nil tenant
// (not an error) when the host is unknown.
func (r *Resolver) byDomain(ctx context.Context, host string) (*domain.Tenant, error) {
	if r.cache != nil {
		if t, ok := r.cache.GetTenantByHost(ctx, host); ok {
			return t, nil
		}
	}

	t, err := r.tenants.GetByDomain(ctx, host)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if r.cache != nil && t.IsActive() {
		r.cache.SetTenantByHost(ctx, host, t, r.cacheTTL)
	}
	return t, nil
}

// candidateHandle walks the path segments, skipping the reserved set, and
// returns the first real segment.
func (r *Resolver) candidateHandle(path string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if _, reserved := r.reserved[strings.ToLower(seg)]; reserved {
			continue
		}
		return seg
	}
	return ""
}

func normalizeHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(strings.TrimSuffix(host, "."))
}
