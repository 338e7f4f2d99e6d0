package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openshelf/storefront/internal/domain"
	"github.com/openshelf/storefront/internal/tenancy"
	"github.com/openshelf/storefront/internal/theme"
)

type stubResolver struct {
	tenant *domain.Tenant
	err    error
}

func (s stubResolver) Resolve(ctx context.Context, host, path string) (*domain.Tenant, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tenant, nil
}

func acmeTenant() *domain.Tenant {
	return &domain.Tenant{
		ID:          uuid.New(),
		Handle:      "acme",
		DisplayName: "Acme Outfitters",
		Status:      domain.TenantActive,
	}
}

func newComposeService(resolver TenantResolver, pages *mockPageStore, themes *mockThemeSettingStore) *CompositionService {
	return NewCompositionService(
		resolver,
		NewPageService(pages),
		NewThemeService(themes),
		theme.NewRegistry(zap.NewNop()),
		zap.NewNop(),
	)
}

func TestCompose_HomeScenario(t *testing.T) {
	tenant := acmeTenant()
	pages := newMockPageStore()
	pages.pages["home"] = &domain.Page{
		Slug:   "home",
		Title:  "Welcome to Acme",
		IsHome: true,
		Sections: []domain.Section{
			{ID: uuid.New(), Type: "hero", Sort: 0, Props: map[string]any{"heading": "Gear up"}},
			{ID: uuid.New(), Type: "product_grid", Sort: 1, Props: map[string]any{}},
		},
	}
	themes := &mockThemeSettingStore{
		setting: &domain.ThemeSetting{
			Theme: domain.Theme{Key: "classic", Name: "Classic", Version: "1.2.0"},
		},
	}

	svc := newComposeService(stubResolver{tenant: tenant}, pages, themes)

	doc, err := svc.ComposePage(context.Background(), "acme.example.com", "/", "home")
	require.NoError(t, err)

	assert.Equal(t, "acme", doc.Tenant.Handle)
	assert.Equal(t, "classic", doc.Theme.Theme.Key)
	assert.Equal(t, domain.ThemeFromTenant, doc.Theme.Source)
	assert.Equal(t, "classic/shell", doc.Layout)
	assert.True(t, doc.Page.IsHome)

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "hero", doc.Sections[0].Type)
	assert.Equal(t, "product_grid", doc.Sections[1].Type)
	assert.Equal(t, "Gear up", doc.Sections[0].Props["heading"])
}

func TestCompose_UnknownSectionTypeSkipped(t *testing.T) {
	tenant := acmeTenant()
	pages := newMockPageStore()
	pages.pages["home"] = &domain.Page{
		Slug: "home",
		Sections: []domain.Section{
			{ID: uuid.New(), Type: "hero", Sort: 0, Props: map[string]any{}},
			{ID: uuid.New(), Type: "countdown_timer", Sort: 1, Props: map[string]any{}},
			{ID: uuid.New(), Type: "newsletter", Sort: 2, Props: map[string]any{}},
		},
	}

	svc := newComposeService(stubResolver{tenant: tenant}, pages, &mockThemeSettingStore{})

	doc, err := svc.ComposePage(context.Background(), "", "/acme", "home")
	require.NoError(t, err, "one unrenderable section must not fail the page")

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "hero", doc.Sections[0].Type)
	assert.Equal(t, "newsletter", doc.Sections[1].Type, "known sections keep their relative order")
}

func TestCompose_RendererRejectionSkipsSection(t *testing.T) {
	tenant := acmeTenant()
	pages := newMockPageStore()
	pages.pages["home"] = &domain.Page{
		Slug: "home",
		Sections: []domain.Section{
			{ID: uuid.New(), Type: "rich_text", Sort: 0, Props: map[string]any{}}, // no body: rejected
			{ID: uuid.New(), Type: "hero", Sort: 1, Props: map[string]any{}},
		},
	}

	svc := newComposeService(stubResolver{tenant: tenant}, pages, &mockThemeSettingStore{})

	doc, err := svc.ComposePage(context.Background(), "", "/acme", "home")
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "hero", doc.Sections[0].Type)
}

func TestCompose_TenantNotFound(t *testing.T) {
	svc := newComposeService(stubResolver{err: tenancy.ErrNoTenant}, newMockPageStore(), &mockThemeSettingStore{})

	_, err := svc.ComposePage(context.Background(), "unknown.example.com", "/nobody", "home")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestCompose_PageNotFound(t *testing.T) {
	svc := newComposeService(stubResolver{tenant: acmeTenant()}, newMockPageStore(), &mockThemeSettingStore{})

	_, err := svc.ComposePage(context.Background(), "", "/acme", "missing")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestCompose_MissingThemeSettingUsesDefaultAndStillRenders(t *testing.T) {
	tenant := acmeTenant()
	pages := newMockPageStore()
	pages.home = &domain.Page{
		Slug:   "home",
		IsHome: true,
		Sections: []domain.Section{
			{ID: uuid.New(), Type: "hero", Sort: 0, Props: map[string]any{}},
		},
	}

	svc := newComposeService(stubResolver{tenant: tenant}, pages, &mockThemeSettingStore{})

	// Empty slug composes the home page.
	doc, err := svc.ComposePage(context.Background(), "acme.example.com", "/", "")
	require.NoError(t, err)

	assert.Equal(t, "default", doc.Theme.Theme.Key)
	assert.Equal(t, domain.ThemeFromDefault, doc.Theme.Source)
	// Unknown key "default" renders through the classic fallback components.
	assert.Equal(t, "classic/shell", doc.Layout)
	require.Len(t, doc.Sections, 1)
}

func TestCompose_DataErrorSurfacesAsUnavailable(t *testing.T) {
	tenant := acmeTenant()
	pages := newMockPageStore()
	boom := errors.New("pool exhausted")
	pages.failWith = boom

	svc := newComposeService(stubResolver{tenant: tenant}, pages, &mockThemeSettingStore{})

	_, err := svc.ComposePage(context.Background(), "", "/acme", "home")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrPageNotFound)
	assert.NotErrorIs(t, err, ErrTenantNotFound)
}

func TestCompose_ResolverDataErrorDistinctFromAbsence(t *testing.T) {
	boom := errors.New("dns failure")
	svc := newComposeService(stubResolver{err: boom}, newMockPageStore(), &mockThemeSettingStore{})

	_, err := svc.ComposePage(context.Background(), "acme.example.com", "/", "home")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTenantNotFound)
}
