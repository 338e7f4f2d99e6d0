// Package theme maps theme keys and stored section type strings to concrete
// renderer implementations. Lookups always produce something renderable:
// unknown theme keys fall back to the classic theme, and a section type with
// no renderer is reported to the caller as a represented miss, not an error.
package theme

import (
	"sort"

	"go.uber.org/zap"
)

// DefaultKey is the theme every unknown key falls back to.
const DefaultKey = "classic"

// MatchKind records which branch a registry lookup took, so callers and
// tests can assert on fallback behavior instead of guessing from payloads.
type MatchKind string

const (
	MatchExact    MatchKind = "exact"
	MatchAlias    MatchKind = "alias"
	MatchFallback MatchKind = "fallback"
)

// Components is a theme's render surface: a page layout shell plus a
// mapping from section type string to renderer.
type Components struct {
	Layout   string
	Sections map[string]Renderer
}

// Renderer returns the renderer for a section type, or false when the theme
// cannot render that type.
func (c Components) Renderer(sectionType string) (Renderer, bool) {
	r, ok := c.Sections[sectionType]
	return r, ok
}

// Registry is the theme lookup table. Multiple keys may alias the same
// underlying component set; that is an intentional many-to-one mapping.
type Registry struct {
	themes  map[string]Components
	aliases map[string]string
	logger  *zap.Logger
}

// NewRegistry builds the registry with the built-in themes registered:
// "classic" (full renderer set), "minimal" (reduced set), and "modern"
// aliased to classic until it ships its own components.
func NewRegistry(logger *zap.Logger) *Registry {
	r := &Registry{
		themes:  make(map[string]Components),
		aliases: make(map[string]string),
		logger:  logger,
	}

	r.Register("classic", Components{
		Layout: "classic/shell",
		Sections: map[string]Renderer{
			"hero":          heroRenderer{},
			"product_grid":  productGridRenderer{},
			"rich_text":     richTextRenderer{},
			"image_gallery": imageGalleryRenderer{},
			"newsletter":    newsletterRenderer{},
		},
	})
	r.Register("minimal", Components{
		Layout: "minimal/shell",
		Sections: map[string]Renderer{
			"hero":       heroRenderer{},
			"rich_text":  richTextRenderer{},
			"newsletter": newsletterRenderer{},
		},
	})
	r.Alias("modern", "classic")

	return r
}

func (r *Registry) Register(key string, c Components) {
	r.themes[key] = c
}

// Alias maps key to an already-registered theme's components.
func (r *Registry) Alias(key, target string) {
	r.aliases[key] = target
}

// Get resolves a theme key to its component set. Unknown keys (including
// aliases pointing at unregistered themes) fall back to DefaultKey.
func (r *Registry) Get(key string) (Components, MatchKind) {
	if c, ok := r.themes[key]; ok {
		return c, MatchExact
	}
	if target, ok := r.aliases[key]; ok {
		if c, ok := r.themes[target]; ok {
			return c, MatchAlias
		}
	}

	r.logger.Debug("unknown theme key, using default", zap.String("key", key))
	return r.themes[DefaultKey], MatchFallback
}

// Keys lists registered theme keys (aliases included), sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.themes)+len(r.aliases))
	for k := range r.themes {
		keys = append(keys, k)
	}
	for k := range r.aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
