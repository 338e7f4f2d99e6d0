package domain

import (
	"time"

	"github.com/google/uuid"
)

// Theme identifies a named bundle of layout + section renderers.
type Theme struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ThemeSettings is the tenant-tunable visual configuration. It is stored as
// a JSON blob and passed untouched to renderers.
type ThemeSettings struct {
	Colors     map[string]string `json:"colors,omitempty"`
	Fonts      map[string]string `json:"fonts,omitempty"`
	SocialLink map[string]string `json:"social_links,omitempty"`
	Contact    map[string]string `json:"contact,omitempty"`
	LogoURL    string            `json:"logo_url,omitempty"`
}

// ThemeSetting is a tenant's active theme choice plus its settings. At most
// one setting per tenant is active.
type ThemeSetting struct {
	ID        uuid.UUID     `json:"id"`
	TenantID  uuid.UUID     `json:"tenant_id"`
	Theme     Theme         `json:"theme"`
	Settings  ThemeSettings `json:"settings"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ThemeSource records which branch produced a resolved theme, so callers and
// tests can tell a stored setting from the substituted default.
type ThemeSource string

const (
	ThemeFromTenant  ThemeSource = "tenant"
	ThemeFromDefault ThemeSource = "default"
)

// ResolvedTheme is the outcome of looking up a tenant's theme. A missing
// ThemeSetting row is policy, not an error: the hard default is substituted.
type ResolvedTheme struct {
	Theme    Theme         `json:"theme"`
	Settings ThemeSettings `json:"settings"`
	Source   ThemeSource   `json:"-"`
}

// DefaultTheme is the hard-coded substitute used when a tenant has no active
// ThemeSetting. Its key intentionally differs from the registry fallback
// ("classic"): the registry maps unknown keys, including this one, to the
// classic component set.
func DefaultTheme() ResolvedTheme {
	return ResolvedTheme{
		Theme: Theme{Key: "default", Name: "Default", Version: "1.0.0"},
		Settings: ThemeSettings{
			Colors: map[string]string{
				"primary":    "#1f2937",
				"secondary":  "#6b7280",
				"accent":     "#2563eb",
				"background": "#ffffff",
			},
			Fonts: map[string]string{
				"heading": "Inter",
				"body":    "Inter",
			},
		},
		Source: ThemeFromDefault,
	}
}
