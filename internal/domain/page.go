package domain

import (
	"time"

	"github.com/google/uuid"
)

// SEO is the structured metadata blob stored alongside a page.
type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
}

// Page is a tenant-owned, ordered collection of sections. Slug is unique
// within a tenant. At most one page per tenant should have IsHome set; when
// the data violates that, the lowest id wins (see store.PageStore).
type Page struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	SEO       SEO       `json:"seo"`
	IsHome    bool      `json:"is_home"`
	Sections  []Section `json:"sections,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageSummary is the listing shape; it carries no sections.
type PageSummary struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	IsHome    bool      `json:"is_home"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Section is a typed, positioned content block. Props are opaque to
// everything except the renderer matching Type.
type Section struct {
	ID    uuid.UUID      `json:"id"`
	Type  string         `json:"type"`
	Sort  int            `json:"sort"`
	Props map[string]any `json:"props"`
}
