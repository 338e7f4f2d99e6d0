package domain

import (
	"time"

	"github.com/google/uuid"
)

type TenantStatus string

const (
	TenantActive    TenantStatus = "active"
	TenantInactive  TenantStatus = "inactive"
	TenantSuspended TenantStatus = "suspended"
)

// Tenant is the unit of data partitioning. Tenants are never physically
// deleted; status transitions control storefront visibility.
type Tenant struct {
	ID          uuid.UUID    `json:"id"`
	Handle      string       `json:"handle"`
	DisplayName string       `json:"display_name"`
	Status      TenantStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (t *Tenant) IsActive() bool {
	return t != nil && t.Status == TenantActive
}

// TenantDomain binds a fully-qualified hostname to exactly one tenant.
// Hosts are globally unique; custom domains can be attached after onboarding.
type TenantDomain struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Host      string    `json:"host"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// TenantSummary is the tenant meta attached to storefront responses.
type TenantSummary struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
}

func (t *Tenant) Summary() TenantSummary {
	return TenantSummary{Handle: t.Handle, DisplayName: t.DisplayName}
}
