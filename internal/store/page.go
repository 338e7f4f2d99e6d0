package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openshelf/storefront/internal/domain"
)

type PageStore struct {
	db *pgxpool.Pool
}

func NewPageStore(db *pgxpool.Pool) *PageStore {
	return &PageStore{db: db}
}

func (s *PageStore) GetBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	query := `SELECT id, tenant_id, slug, title, template, seo, is_home, created_at, updated_at
		 FROM pages WHERE slug = $1`
	query, args := tenantClause(ctx, query, "tenant_id", []any{slug})

	return s.getOne(ctx, query, args)
}

// GetHome returns the tenant's home page. More than one page claiming
// is_home is tolerated: the lowest id wins, so repeated reads are stable.
func (s *PageStore) GetHome(ctx context.Context) (*domain.Page, error) {
	query := `SELECT id, tenant_id, slug, title, template, seo, is_home, created_at, updated_at
		 FROM pages WHERE is_home = $1`
	query, args := tenantClause(ctx, query, "tenant_id", []any{true})
	query += ` ORDER BY id ASC LIMIT 1`

	return s.getOne(ctx, query, args)
}

func (s *PageStore) getOne(ctx context.Context, query string, args []any) (*domain.Page, error) {
	p := &domain.Page{}
	err := s.db.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.TenantID, &p.Slug, &p.Title, &p.Template, &p.SEO, &p.IsHome, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sections, err := s.sections(ctx, p)
	if err != nil {
		return nil, err
	}
	p.Sections = sections
	return p, nil
}

// sections loads a page's sections in total order: sort ascending, id
// ascending on ties.
func (s *PageStore) sections(ctx context.Context, p *domain.Page) ([]domain.Section, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, type, sort, props FROM sections
		 WHERE page_id = $1 ORDER BY sort ASC, id ASC`,
		p.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Section
	for rows.Next() {
		var sec domain.Section
		if err := rows.Scan(&sec.ID, &sec.Type, &sec.Sort, &sec.Props); err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}

func (s *PageStore) ListSummaries(ctx context.Context) ([]domain.PageSummary, error) {
	query := `SELECT id, slug, title, template, is_home, created_at, updated_at
		 FROM pages WHERE TRUE`
	query, args := tenantClause(ctx, query, "tenant_id", nil)
	query += ` ORDER BY is_home DESC, title ASC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PageSummary
	for rows.Next() {
		var p domain.PageSummary
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Template, &p.IsHome, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create inserts a page with its sections in one transaction. An unset
// tenant reference is stamped from the resolved tenant; explicit values are
// kept as-is.
func (s *PageStore) Create(ctx context.Context, p *domain.Page) error {
	domain.StampTenant(ctx, &p.TenantID)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO pages (tenant_id, slug, title, template, seo, is_home)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		p.TenantID, p.Slug, p.Title, p.Template, p.SEO, p.IsHome,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}

	for i := range p.Sections {
		sec := &p.Sections[i]
		err = tx.QueryRow(ctx,
			`INSERT INTO sections (page_id, type, sort, props)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			p.ID, sec.Type, sec.Sort, sec.Props,
		).Scan(&sec.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
