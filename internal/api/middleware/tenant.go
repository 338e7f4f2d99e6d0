package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openshelf/storefront/internal/domain"
	"github.com/openshelf/storefront/internal/tenancy"
)

// Resolver is the tenant resolution contract this middleware depends on.
type Resolver interface {
	Resolve(ctx context.Context, host, path string) (*domain.Tenant, error)
}

// ResolveTenant resolves the active tenant from the Host header or the
// first non-reserved path segment and binds it to the request context.
// Resolution absence is a 404 with a stable code; data-access failures are
// a 503 so they are never mistaken for a legitimately absent tenant.
func ResolveTenant(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant, err := resolver.Resolve(r.Context(), r.Host, r.URL.Path)
			if err != nil {
				if errors.Is(err, tenancy.ErrNoTenant) {
					writeError(w, http.StatusNotFound, "tenant_not_found", "Tenant not found")
					return
				}
				writeError(w, http.StatusServiceUnavailable, "unavailable", "Service unavailable")
				return
			}

			ctx := domain.WithTenant(r.Context(), tenant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg, "code": code})
}
