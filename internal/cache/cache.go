// Package cache holds the tenant-by-domain resolution cache. Entries are
// keyed by normalized host so one tenant's cached resolution can never be
// served for a different host.
package cache

import (
	"context"
	"time"

	"github.com/openshelf/storefront/internal/domain"
)

// TenantCache caches active tenants by host. Implementations must treat a
// missing or expired entry as a miss, never an error: the resolver always
// falls back to the store.
type TenantCache interface {
	GetTenantByHost(ctx context.Context, host string) (*domain.Tenant, bool)
	SetTenantByHost(ctx context.Context, host string, t *domain.Tenant, ttl time.Duration)
	// InvalidateHost drops the entry for host. Called when domains are
	// added/removed or a tenant's status changes.
	InvalidateHost(ctx context.Context, host string)
}
