package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openshelf/storefront/internal/cache"
	"github.com/openshelf/storefront/internal/domain"
	"github.com/openshelf/storefront/internal/store"
)

var handlePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// TenantHandler covers the onboarding/admin surface: creating tenants,
// attaching and detaching custom domains, and status transitions. Domain
// and status mutations invalidate the resolver cache so a stale entry never
// answers for a changed host.
type TenantHandler struct {
	tenants domain.TenantStore
	cache   cache.TenantCache
}

func NewTenantHandler(tenants domain.TenantStore, c cache.TenantCache) *TenantHandler {
	return &TenantHandler{tenants: tenants, cache: c}
}

type createTenantRequest struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	Domain      string `json:"domain,omitempty"`
}

func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Handle = strings.ToLower(strings.TrimSpace(req.Handle))
	if !handlePattern.MatchString(req.Handle) {
		writeError(w, http.StatusBadRequest, "handle must be a URL-safe slug")
		return
	}
	if req.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "display_name is required")
		return
	}

	tenant := &domain.Tenant{
		Handle:      req.Handle,
		DisplayName: req.DisplayName,
		Status:      domain.TenantActive,
	}
	if err := h.tenants.Create(r.Context(), tenant); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "handle already taken")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create tenant")
		return
	}

	if req.Domain != "" {
		d := &domain.TenantDomain{TenantID: tenant.ID, Host: strings.ToLower(req.Domain), IsPrimary: true}
		if err := h.tenants.AddDomain(r.Context(), d); err != nil {
			if errors.Is(err, store.ErrConflict) {
				writeError(w, http.StatusConflict, "domain already bound to a tenant")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to bind domain")
			return
		}
	}

	writeJSON(w, http.StatusCreated, tenant)
}

type addDomainRequest struct {
	Host      string `json:"host"`
	IsPrimary bool   `json:"is_primary"`
}

func (h *TenantHandler) AddDomain(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tenant id")
		return
	}

	var req addDomainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Host = strings.ToLower(strings.TrimSpace(req.Host))
	if req.Host == "" {
		writeError(w, http.StatusBadRequest, "host is required")
		return
	}

	d := &domain.TenantDomain{TenantID: tenantID, Host: req.Host, IsPrimary: req.IsPrimary}
	if err := h.tenants.AddDomain(r.Context(), d); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "domain already bound to a tenant")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to bind domain")
		return
	}

	h.cache.InvalidateHost(r.Context(), req.Host)
	writeJSON(w, http.StatusCreated, d)
}

func (h *TenantHandler) RemoveDomain(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tenant id")
		return
	}
	host := strings.ToLower(chi.URLParam(r, "host"))

	if err := h.tenants.RemoveDomain(r.Context(), tenantID, host); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "domain not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to remove domain")
		return
	}

	h.cache.InvalidateHost(r.Context(), host)
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

type updateStatusRequest struct {
	Status domain.TenantStatus `json:"status"`
}

func (h *TenantHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tenant id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch req.Status {
	case domain.TenantActive, domain.TenantInactive, domain.TenantSuspended:
	default:
		writeError(w, http.StatusBadRequest, "status must be active, inactive or suspended")
		return
	}

	if err := h.tenants.UpdateStatus(r.Context(), tenantID, req.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "tenant not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update status")
		return
	}

	// Drop every cached host for this tenant so the change is visible
	// before the TTL expires.
	if domains, err := h.tenants.ListDomains(r.Context(), tenantID); err == nil {
		for _, d := range domains {
			h.cache.InvalidateHost(r.Context(), d.Host)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}
