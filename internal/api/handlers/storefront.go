package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openshelf/storefront/internal/domain"
	"github.com/openshelf/storefront/internal/service"
)

// StorefrontHandler serves the tenant-facing read API: page listings, pages
// with ordered sections, theme payloads, and fully composed render
// documents. The tenant is resolved by middleware before these run.
type StorefrontHandler struct {
	pages   *service.PageService
	themes  *service.ThemeService
	compose *service.CompositionService
}

func NewStorefrontHandler(pages *service.PageService, themes *service.ThemeService, compose *service.CompositionService) *StorefrontHandler {
	return &StorefrontHandler{pages: pages, themes: themes, compose: compose}
}

type tenantMeta struct {
	Tenant domain.TenantSummary `json:"tenant"`
}

type listPagesResponse struct {
	Data []domain.PageSummary `json:"data"`
	Meta tenantMeta           `json:"meta"`
}

func (h *StorefrontHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	tenant := domain.TenantFromContext(r.Context())
	if tenant == nil {
		writeErrorCode(w, http.StatusNotFound, "tenant_not_found", "Tenant not found")
		return
	}

	summaries, err := h.pages.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list pages")
		return
	}
	if summaries == nil {
		summaries = []domain.PageSummary{}
	}

	writeJSON(w, http.StatusOK, listPagesResponse{
		Data: summaries,
		Meta: tenantMeta{Tenant: tenant.Summary()},
	})
}

type pageResponse struct {
	Data *domain.Page `json:"data"`
	Meta tenantMeta   `json:"meta"`
}

func (h *StorefrontHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	tenant := domain.TenantFromContext(r.Context())
	if tenant == nil {
		writeErrorCode(w, http.StatusNotFound, "tenant_not_found", "Tenant not found")
		return
	}

	page, err := h.pages.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			writeError(w, http.StatusNotFound, "Page not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load page")
		return
	}

	writeJSON(w, http.StatusOK, pageResponse{
		Data: page,
		Meta: tenantMeta{Tenant: tenant.Summary()},
	})
}

type themeResponse struct {
	Data domain.ResolvedTheme `json:"data"`
	Meta tenantMeta           `json:"meta"`
}

func (h *StorefrontHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	tenant := domain.TenantFromContext(r.Context())
	if tenant == nil {
		writeErrorCode(w, http.StatusNotFound, "tenant_not_found", "Tenant not found")
		return
	}

	resolved, err := h.themes.Active(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load theme")
		return
	}

	writeJSON(w, http.StatusOK, themeResponse{
		Data: resolved,
		Meta: tenantMeta{Tenant: tenant.Summary()},
	})
}

// Home serves the composed render document for the tenant's home page.
func (h *StorefrontHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "")
}

// RenderPage serves the composed render document for a page by slug.
func (h *StorefrontHandler) RenderPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, chi.URLParam(r, "slug"))
}

func (h *StorefrontHandler) render(w http.ResponseWriter, r *http.Request, slug string) {
	tenant := domain.TenantFromContext(r.Context())
	if tenant == nil {
		writeErrorCode(w, http.StatusNotFound, "tenant_not_found", "Tenant not found")
		return
	}

	doc, err := h.compose.ComposeForTenant(r.Context(), tenant, slug)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			writeError(w, http.StatusNotFound, "Page not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to compose page")
		return
	}

	writeJSON(w, http.StatusOK, doc)
}
