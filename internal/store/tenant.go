package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openshelf/storefront/internal/domain"
)

type TenantStore struct {
	db *pgxpool.Pool
}

func NewTenantStore(db *pgxpool.Pool) *TenantStore {
	return &TenantStore{db: db}
}

func (s *TenantStore) Create(ctx context.Context, t *domain.Tenant) error {
	if t.Status == "" {
		t.Status = domain.TenantActive
	}
	err := s.db.QueryRow(ctx,
		`INSERT INTO tenants (handle, display_name, status) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		t.Handle, t.DisplayName, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *TenantStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return s.getOne(ctx,
		`SELECT id, handle, display_name, status, created_at, updated_at
		 FROM tenants WHERE id = $1`, id)
}

func (s *TenantStore) GetByHandle(ctx context.Context, handle string) (*domain.Tenant, error) {
	return s.getOne(ctx,
		`SELECT id, handle, display_name, status, created_at, updated_at
		 FROM tenants WHERE handle = $1`, handle)
}

func (s *TenantStore) GetByDomain(ctx context.Context, host string) (*domain.Tenant, error) {
	return s.getOne(ctx,
		`SELECT t.id, t.handle, t.display_name, t.status, t.created_at, t.updated_at
		 FROM tenants t
		 JOIN domains d ON d.tenant_id = t.id
		 WHERE d.host = $1`, host)
}

func (s *TenantStore) getOne(ctx context.Context, query string, arg any) (*domain.Tenant, error) {
	t := &domain.Tenant{}
	err := s.db.QueryRow(ctx, query, arg).
		Scan(&t.ID, &t.Handle, &t.DisplayName, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TenantStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TenantStatus) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE tenants SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *TenantStore) AddDomain(ctx context.Context, d *domain.TenantDomain) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO domains (tenant_id, host, is_primary) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		d.TenantID, d.Host, d.IsPrimary,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *TenantStore) RemoveDomain(ctx context.Context, tenantID uuid.UUID, host string) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM domains WHERE tenant_id = $1 AND host = $2`,
		tenantID, host,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *TenantStore) ListDomains(ctx context.Context, tenantID uuid.UUID) ([]domain.TenantDomain, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, tenant_id, host, is_primary, created_at
		 FROM domains WHERE tenant_id = $1 ORDER BY created_at`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TenantDomain
	for rows.Next() {
		var d domain.TenantDomain
		if err := rows.Scan(&d.ID, &d.TenantID, &d.Host, &d.IsPrimary, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
