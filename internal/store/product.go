package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openshelf/storefront/internal/domain"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// ProductStore reads external product/category records for storefront
// listings. This subsystem never writes them.
type ProductStore struct {
	db *pgxpool.Pool
}

func NewProductStore(db *pgxpool.Pool) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, tenant_id, category_id, name, slug, description, price_cents, currency, image_url, is_active, created_at, updated_at`

func (s *ProductStore) List(ctx context.Context, opts domain.ListProductsOpts) (*domain.ProductPage, error) {
	where := `WHERE is_active`
	var args []any
	if opts.CategoryID != nil {
		args = append(args, *opts.CategoryID)
		where = fmt.Sprintf("%s AND category_id = $%d", where, len(args))
	}
	where, args = tenantClause(ctx, where, "tenant_id", args)

	return s.page(ctx, where, args, opts.Page, opts.PerPage)
}

func (s *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	query, args := tenantClause(ctx, query, "tenant_id", []any{id})

	p := &domain.Product{}
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.TenantID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
		&p.PriceCents, &p.Currency, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListByCategorySlug matches the category by case-insensitive name
// comparison, with the URL slug's dashes treated as spaces.
func (s *ProductStore) ListByCategorySlug(ctx context.Context, slug string, page, perPage int) (*domain.ProductPage, error) {
	name := strings.ReplaceAll(slug, "-", " ")
	where := `WHERE is_active AND category_id IN
		 (SELECT id FROM categories WHERE name ILIKE '%' || $1 || '%')`
	args := []any{name}
	where, args = tenantClause(ctx, where, "tenant_id", args)

	return s.page(ctx, where, args, page, perPage)
}

func (s *ProductStore) page(ctx context.Context, where string, args []any, page, perPage int) (*domain.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM products `+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY name ASC, id ASC LIMIT $%d OFFSET $%d`,
		productColumns, where, len(args)+1, len(args)+2)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Product, 0, perPage)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.CategoryID, &p.Name, &p.Slug, &p.Description,
			&p.PriceCents, &p.Currency, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.ProductPage{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}
