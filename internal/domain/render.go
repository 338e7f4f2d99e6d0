package domain

import "github.com/google/uuid"

// RenderedSection is a section after its renderer normalized the props for
// the client. Order follows the page's section order.
type RenderedSection struct {
	ID    uuid.UUID      `json:"id"`
	Type  string         `json:"type"`
	Sort  int            `json:"sort"`
	Props map[string]any `json:"props"`
}

// PageMeta is the page envelope inside a RenderDocument.
type PageMeta struct {
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	SEO    SEO    `json:"seo"`
	IsHome bool   `json:"is_home"`
}

// RenderDocument is the fully composed, render-ready output of the
// composition service: one tenant, one theme, one page, ordered sections.
type RenderDocument struct {
	Tenant   TenantSummary     `json:"tenant"`
	Theme    ResolvedTheme     `json:"theme"`
	Layout   string            `json:"layout"`
	Page     PageMeta          `json:"page"`
	Sections []RenderedSection `json:"sections"`
}
