package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openshelf/storefront/internal/domain"
	"github.com/openshelf/storefront/internal/store"
)

// ProductHandler serves read-only product listings. Product data is
// external-collaborator data; it shares the tenant-resolution prerequisite
// but is not part of page composition.
type ProductHandler struct {
	products domain.ProductStore
}

func NewProductHandler(products domain.ProductStore) *ProductHandler {
	return &ProductHandler{products: products}
}

type productListResponse struct {
	Data *domain.ProductPage `json:"data"`
	Meta tenantMeta          `json:"meta"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	tenant := domain.TenantFromContext(r.Context())
	if tenant == nil {
		writeErrorCode(w, http.StatusNotFound, "tenant_not_found", "Tenant not found")
		return
	}

	opts := domain.ListProductsOpts{
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "per_page", 20),
	}
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		opts.CategoryID = &id
	}

	page, err := h.products.List(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	writeJSON(w, http.StatusOK, productListResponse{
		Data: page,
		Meta: tenantMeta{Tenant: tenant.Summary()},
	})
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	tenant := domain.TenantFromContext(r.Context())
	if tenant == nil {
		writeErrorCode(w, http.StatusNotFound, "tenant_not_found", "Tenant not found")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data": product,
		"meta": tenantMeta{Tenant: tenant.Summary()},
	})
}

func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	tenant := domain.TenantFromContext(r.Context())
	if tenant == nil {
		writeErrorCode(w, http.StatusNotFound, "tenant_not_found", "Tenant not found")
		return
	}

	page, err := h.products.ListByCategorySlug(r.Context(), chi.URLParam(r, "slug"),
		queryInt(r, "page", 1), queryInt(r, "per_page", 20))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	writeJSON(w, http.StatusOK, productListResponse{
		Data: page,
		Meta: tenantMeta{Tenant: tenant.Summary()},
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
