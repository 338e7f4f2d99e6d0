package domain

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const tenantContextKey contextKey = "tenant"

// WithTenant binds the resolved tenant to the request context. The binding
// is request-scoped only and must never outlive the request.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, tenantContextKey, t)
}

// TenantFromContext returns the tenant bound to ctx, or nil if none was
// resolved. Absence is not an error: callers operating without multitenancy
// context keep working.
func TenantFromContext(ctx context.Context) *Tenant {
	t, _ := ctx.Value(tenantContextKey).(*Tenant)
	return t
}

// ScopeID returns the resolved tenant's id and true, or false when no tenant
// is bound. Stores use it to restrict reads; contexts without a tenant
// (super-admin tooling) get unrestricted queries.
func ScopeID(ctx context.Context) (uuid.UUID, bool) {
	t := TenantFromContext(ctx)
	if t == nil {
		return uuid.Nil, false
	}
	return t.ID, true
}

// StampTenant fills an unset tenant reference from the resolved tenant.
// Explicit values are never overwritten, and when no tenant is bound the
// field stays unset rather than guessed.
func StampTenant(ctx context.Context, tenantID *uuid.UUID) {
	if tenantID == nil || *tenantID != uuid.Nil {
		return
	}
	if id, ok := ScopeID(ctx); ok {
		*tenantID = id
	}
}
