package domain

import (
	"context"

	"github.com/google/uuid"
)

type TenantStore interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	GetByHandle(ctx context.Context, handle string) (*Tenant, error)
	GetByDomain(ctx context.Context, host string) (*Tenant, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status TenantStatus) error
	AddDomain(ctx context.Context, d *TenantDomain) error
	RemoveDomain(ctx context.Context, tenantID uuid.UUID, host string) error
	ListDomains(ctx context.Context, tenantID uuid.UUID) ([]TenantDomain, error)
}

type PageStore interface {
	// GetBySlug returns the page with its sections ordered by sort ascending,
	// id ascending on ties. The read is tenant-scoped through ctx.
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	// GetHome returns the tenant's home page; if more than one page claims
	// is_home, the lowest id wins.
	GetHome(ctx context.Context) (*Page, error)
	// ListSummaries orders home page first, then alphabetically by title.
	ListSummaries(ctx context.Context) ([]PageSummary, error)
	Create(ctx context.Context, p *Page) error
}

type ThemeSettingStore interface {
	// GetActive returns the tenant's active theme setting, or store.ErrNotFound.
	GetActive(ctx context.Context) (*ThemeSetting, error)
	Upsert(ctx context.Context, ts *ThemeSetting) error
}

type ListProductsOpts struct {
	CategoryID *uuid.UUID
	Page       int
	PerPage    int
}

type ProductStore interface {
	List(ctx context.Context, opts ListProductsOpts) (*ProductPage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// ListByCategorySlug matches the category by case-insensitive name
	// comparison against the slug with dashes replaced by spaces.
	ListByCategorySlug(ctx context.Context, slug string, page, perPage int) (*ProductPage, error)
}
