package service

import (
	"context"
	"errors"

	"github.com/openshelf/storefront/internal/domain"
	"github.com/openshelf/storefront/internal/store"
)

type ThemeService struct {
	settings domain.ThemeSettingStore
}

func NewThemeService(settings domain.ThemeSettingStore) *ThemeService {
	return &ThemeService{settings: settings}
}

// Active returns the tenant's resolved theme. A tenant without an active
// ThemeSetting gets the hard default; only genuine data-access failures are
// returned as errors.
func (s *ThemeService) Active(ctx context.Context) (domain.ResolvedTheme, error) {
	ts, err := s.settings.GetActive(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.DefaultTheme(), nil
		}
		return domain.ResolvedTheme{}, err
	}
	return domain.ResolvedTheme{
		Theme:    ts.Theme,
		Settings: ts.Settings,
		Source:   domain.ThemeFromTenant,
	}, nil
}

func (s *ThemeService) Set(ctx context.Context, ts *domain.ThemeSetting) error {
	return s.settings.Upsert(ctx, ts)
}
