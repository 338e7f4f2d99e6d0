package store

import (
	"context"
	"fmt"

	"github.com/openshelf/storefront/internal/domain"
)

// tenantClause appends "AND <col> = $n" to a query when a tenant is bound to
// ctx. When no tenant is bound (super-admin tooling, offline jobs) the query
// runs unrestricted.
func tenantClause(ctx context.Context, query, col string, args []any) (string, []any) {
	id, ok := domain.ScopeID(ctx)
	if !ok {
		return query, args
	}
	args = append(args, id)
	return fmt.Sprintf("%s AND %s = $%d", query, col, len(args)), args
}
