package theme

import (
	"errors"
	"fmt"

	"github.com/openshelf/storefront/internal/domain"
)

// Renderer turns one stored section into a render-ready section. Renderers
// are the only code that interprets section props; they normalize them for
// the client but never mutate the stored map.
type Renderer interface {
	Type() string
	Render(sec domain.Section, settings domain.ThemeSettings) (domain.RenderedSection, error)
}

var errBadProps = errors.New("section props unusable")

// rendered copies the section's props merged with normalized overrides.
func rendered(sec domain.Section, overrides map[string]any) domain.RenderedSection {
	props := make(map[string]any, len(sec.Props)+len(overrides))
	for k, v := range sec.Props {
		props[k] = v
	}
	for k, v := range overrides {
		props[k] = v
	}
	return domain.RenderedSection{ID: sec.ID, Type: sec.Type, Sort: sec.Sort, Props: props}
}

func stringProp(props map[string]any, key, fallback string) string {
	if v, ok := props[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func intProp(props map[string]any, key string, fallback int) int {
	switch v := props[key].(type) {
	case int:
		return v
	case float64: // JSON numbers decode as float64
		return int(v)
	default:
		return fallback
	}
}

type heroRenderer struct{}

func (heroRenderer) Type() string { return "hero" }

func (heroRenderer) Render(sec domain.Section, settings domain.ThemeSettings) (domain.RenderedSection, error) {
	return rendered(sec, map[string]any{
		"heading":    stringProp(sec.Props, "heading", "Welcome"),
		"subheading": stringProp(sec.Props, "subheading", ""),
		"cta_label":  stringProp(sec.Props, "cta_label", "Shop now"),
		"cta_url":    stringProp(sec.Props, "cta_url", "/"),
		"background": stringProp(sec.Props, "background", settings.Colors["primary"]),
	}), nil
}

type productGridRenderer struct{}

func (productGridRenderer) Type() string { return "product_grid" }

func (productGridRenderer) Render(sec domain.Section, _ domain.ThemeSettings) (domain.RenderedSection, error) {
	limit := intProp(sec.Props, "limit", 8)
	if limit < 1 {
		limit = 1
	}
	if limit > 24 {
		limit = 24
	}
	return rendered(sec, map[string]any{
		"title":   stringProp(sec.Props, "title", "Featured products"),
		"limit":   limit,
		"columns": intProp(sec.Props, "columns", 4),
	}), nil
}

type richTextRenderer struct{}

func (richTextRenderer) Type() string { return "rich_text" }

func (richTextRenderer) Render(sec domain.Section, _ domain.ThemeSettings) (domain.RenderedSection, error) {
	body := stringProp(sec.Props, "html", stringProp(sec.Props, "text", ""))
	if body == "" {
		return domain.RenderedSection{}, fmt.Errorf("%w: rich_text without html or text", errBadProps)
	}
	return rendered(sec, map[string]any{"html": body}), nil
}

type imageGalleryRenderer struct{}

func (imageGalleryRenderer) Type() string { return "image_gallery" }

func (imageGalleryRenderer) Render(sec domain.Section, _ domain.ThemeSettings) (domain.RenderedSection, error) {
	raw, ok := sec.Props["images"].([]any)
	if !ok || len(raw) == 0 {
		return domain.RenderedSection{}, fmt.Errorf("%w: image_gallery without images", errBadProps)
	}
	images := make([]string, 0, len(raw))
	for _, it := range raw {
		if s, ok := it.(string); ok && s != "" {
			images = append(images, s)
		}
	}
	if len(images) == 0 {
		return domain.RenderedSection{}, fmt.Errorf("%w: image_gallery images not strings", errBadProps)
	}
	return rendered(sec, map[string]any{"images": images}), nil
}

type newsletterRenderer struct{}

func (newsletterRenderer) Type() string { return "newsletter" }

func (newsletterRenderer) Render(sec domain.Section, settings domain.ThemeSettings) (domain.RenderedSection, error) {
	contact := ""
	if settings.Contact != nil {
		contact = settings.Contact["email"]
	}
	return rendered(sec, map[string]any{
		"heading":     stringProp(sec.Props, "heading", "Stay in the loop"),
		"placeholder": stringProp(sec.Props, "placeholder", "you@example.com"),
		"contact":     contact,
	}), nil
}
