package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openshelf/storefront/internal/domain"
)

type ThemeSettingStore struct {
	db *pgxpool.Pool
}

func NewThemeSettingStore(db *pgxpool.Pool) *ThemeSettingStore {
	return &ThemeSettingStore{db: db}
}

// GetActive returns the tenant's active theme setting. Callers substitute
// the hard default on ErrNotFound; a missing row is policy, not a failure.
func (s *ThemeSettingStore) GetActive(ctx context.Context) (*domain.ThemeSetting, error) {
	query := `SELECT id, tenant_id, theme_key, theme_name, theme_version, settings, is_active, created_at, updated_at
		 FROM theme_settings WHERE is_active = $1`
	query, args := tenantClause(ctx, query, "tenant_id", []any{true})
	query += ` ORDER BY updated_at DESC LIMIT 1`

	ts := &domain.ThemeSetting{}
	err := s.db.QueryRow(ctx, query, args...).
		Scan(&ts.ID, &ts.TenantID, &ts.Theme.Key, &ts.Theme.Name, &ts.Theme.Version,
			&ts.Settings, &ts.IsActive, &ts.CreatedAt, &ts.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ts, nil
}

// Upsert stores ts as the tenant's single active setting, deactivating any
// previous one in the same transaction.
func (s *ThemeSettingStore) Upsert(ctx context.Context, ts *domain.ThemeSetting) error {
	domain.StampTenant(ctx, &ts.TenantID)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`UPDATE theme_settings SET is_active = FALSE, updated_at = NOW()
		 WHERE tenant_id = $1 AND is_active`,
		ts.TenantID,
	)
	if err != nil {
		return err
	}

	ts.IsActive = true
	err = tx.QueryRow(ctx,
		`INSERT INTO theme_settings (tenant_id, theme_key, theme_name, theme_version, settings, is_active)
		 VALUES ($1, $2, $3, $4, $5, TRUE)
		 RETURNING id, created_at, updated_at`,
		ts.TenantID, ts.Theme.Key, ts.Theme.Name, ts.Theme.Version, ts.Settings,
	).Scan(&ts.ID, &ts.CreatedAt, &ts.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
