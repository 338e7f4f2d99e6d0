package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openshelf/storefront/internal/domain"
	"github.com/openshelf/storefront/internal/service"
	"github.com/openshelf/storefront/internal/store"
	"github.com/openshelf/storefront/internal/theme"
)

// fakePageStore implements domain.PageStore for handler tests.
type fakePageStore struct {
	pages map[string]*domain.Page
}

func (f *fakePageStore) GetBySlug(ctx context.Context, slug string) (*domain.Page, error) {
	p, ok := f.pages[slug]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p, nil
}

func (f *fakePageStore) GetHome(ctx context.Context) (*domain.Page, error) {
	for _, p := range f.pages {
		if p.IsHome {
			return p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakePageStore) ListSummaries(ctx context.Context) ([]domain.PageSummary, error) {
	var out []domain.PageSummary
	for _, p := range f.pages {
		out = append(out, domain.PageSummary{ID: p.ID, Slug: p.Slug, Title: p.Title, IsHome: p.IsHome})
	}
	return out, nil
}

func (f *fakePageStore) Create(ctx context.Context, p *domain.Page) error { return nil }

// fakeThemeStore implements domain.ThemeSettingStore; nil setting means the
// tenant has no ThemeSetting row.
type fakeThemeStore struct {
	setting *domain.ThemeSetting
}

func (f *fakeThemeStore) GetActive(ctx context.Context) (*domain.ThemeSetting, error) {
	if f.setting == nil {
		return nil, store.ErrNotFound
	}
	return f.setting, nil
}

func (f *fakeThemeStore) Upsert(ctx context.Context, ts *domain.ThemeSetting) error { return nil }

type noopResolver struct{}

func (noopResolver) Resolve(ctx context.Context, host, path string) (*domain.Tenant, error) {
	return nil, nil
}

func testRouter(pages *fakePageStore, themes *fakeThemeStore, tenant *domain.Tenant) http.Handler {
	pageSvc := service.NewPageService(pages)
	themeSvc := service.NewThemeService(themes)
	composeSvc := service.NewCompositionService(noopResolver{}, pageSvc, themeSvc, theme.NewRegistry(zap.NewNop()), zap.NewNop())
	h := NewStorefrontHandler(pageSvc, themeSvc, composeSvc)

	r := chi.NewRouter()
	if tenant != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(domain.WithTenant(req.Context(), tenant)))
			})
		})
	}
	r.Get("/pages", h.ListPages)
	r.Get("/page/{slug}", h.GetPage)
	r.Get("/render/{slug}", h.RenderPage)
	r.Get("/theme", h.GetTheme)
	return r
}

func acme() *domain.Tenant {
	return &domain.Tenant{ID: uuid.New(), Handle: "acme", DisplayName: "Acme Outfitters", Status: domain.TenantActive}
}

func TestGetPage_ReturnsOrderedSections(t *testing.T) {
	pages := &fakePageStore{pages: map[string]*domain.Page{
		"home": {
			ID: uuid.New(), Slug: "home", Title: "Home", IsHome: true,
			Sections: []domain.Section{
				{ID: uuid.New(), Type: "hero", Sort: 0, Props: map[string]any{}},
				{ID: uuid.New(), Type: "product_grid", Sort: 1, Props: map[string]any{}},
			},
		},
	}}
	router := testRouter(pages, &fakeThemeStore{}, acme())

	req := httptest.NewRequest(http.MethodGet, "/page/home", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data domain.Page `json:"data"`
		Meta struct {
			Tenant domain.TenantSummary `json:"tenant"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Meta.Tenant.Handle != "acme" {
		t.Fatalf("expected tenant meta, got %+v", resp.Meta.Tenant)
	}
	if len(resp.Data.Sections) != 2 || resp.Data.Sections[0].Type != "hero" {
		t.Fatalf("expected ordered sections, got %+v", resp.Data.Sections)
	}
}

func TestGetPage_NotFoundBody(t *testing.T) {
	router := testRouter(&fakePageStore{pages: map[string]*domain.Page{}}, &fakeThemeStore{}, acme())

	req := httptest.NewRequest(http.MethodGet, "/page/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["error"] != "Page not found" {
		t.Fatalf("expected 'Page not found', got %q", body["error"])
	}
}

func TestGetTheme_FallsBackToDefault(t *testing.T) {
	router := testRouter(&fakePageStore{pages: map[string]*domain.Page{}}, &fakeThemeStore{}, acme())

	req := httptest.NewRequest(http.MethodGet, "/theme", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data struct {
			Theme domain.Theme `json:"theme"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data.Theme.Key != "default" {
		t.Fatalf("expected default theme key, got %q", resp.Data.Theme.Key)
	}
}

func TestRenderPage_SkipsUnknownSectionTypes(t *testing.T) {
	pages := &fakePageStore{pages: map[string]*domain.Page{
		"home": {
			ID: uuid.New(), Slug: "home",
			Sections: []domain.Section{
				{ID: uuid.New(), Type: "hero", Sort: 0, Props: map[string]any{}},
				{ID: uuid.New(), Type: "mystery", Sort: 1, Props: map[string]any{}},
				{ID: uuid.New(), Type: "newsletter", Sort: 2, Props: map[string]any{}},
			},
		},
	}}
	router := testRouter(pages, &fakeThemeStore{}, acme())

	req := httptest.NewRequest(http.MethodGet, "/render/home", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var doc domain.RenderDocument
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 rendered sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Type != "hero" || doc.Sections[1].Type != "newsletter" {
		t.Fatalf("unexpected section order: %+v", doc.Sections)
	}
}

func TestHandlers_RequireResolvedTenant(t *testing.T) {
	router := testRouter(&fakePageStore{pages: map[string]*domain.Page{}}, &fakeThemeStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/pages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without tenant, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["code"] != "tenant_not_found" {
		t.Fatalf("expected stable code, got %q", body["code"])
	}
}
