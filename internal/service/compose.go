package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/openshelf/storefront/internal/domain"
	"github.com/openshelf/storefront/internal/metrics"
	"github.com/openshelf/storefront/internal/tenancy"
	"github.com/openshelf/storefront/internal/theme"
)

// TenantResolver is the slice of tenancy.Resolver the composition pipeline
// needs.
type TenantResolver interface {
	Resolve(ctx context.Context, host, path string) (*domain.Tenant, error)
}

// CompositionService is the stateless, single-pass pipeline that turns
// (host, path, slug) into a render-ready document: resolve tenant, load
// theme and page, map each section to its renderer.
type CompositionService struct {
	resolver TenantResolver
	pages    *PageService
	themes   *ThemeService
	registry *theme.Registry
	logger   *zap.Logger
}

func NewCompositionService(resolver TenantResolver, pages *PageService, themes *ThemeService, registry *theme.Registry, logger *zap.Logger) *CompositionService {
	return &CompositionService{
		resolver: resolver,
		pages:    pages,
		themes:   themes,
		registry: registry,
		logger:   logger,
	}
}

// ComposePage composes the page identified by slug for whichever tenant
// (host, path) resolves to. An empty slug means the tenant's home page.
// Returns ErrTenantNotFound / ErrPageNotFound for genuine absence; anything
// else is a data-access failure the caller surfaces as unavailable.
func (s *CompositionService) ComposePage(ctx context.Context, host, path, slug string) (*domain.RenderDocument, error) {
	tenant, err := s.resolver.Resolve(ctx, host, path)
	if err != nil {
		if errors.Is(err, tenancy.ErrNoTenant) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	ctx = domain.WithTenant(ctx, tenant)

	return s.ComposeForTenant(ctx, tenant, slug)
}

// ComposeForTenant composes a page for an already-resolved tenant bound to
// ctx. Handlers that resolved the tenant in middleware call this directly.
func (s *CompositionService) ComposeForTenant(ctx context.Context, tenant *domain.Tenant, slug string) (*domain.RenderDocument, error) {
	resolved, err := s.themes.Active(ctx)
	if err != nil {
		return nil, err
	}

	var page *domain.Page
	if slug == "" {
		page, err = s.pages.Home(ctx)
	} else {
		page, err = s.pages.Get(ctx, slug)
	}
	if err != nil {
		return nil, err
	}

	components, match := s.registry.Get(resolved.Theme.Key)
	if match == theme.MatchFallback {
		s.logger.Debug("theme key not registered, rendering with default components",
			zap.String("tenant", tenant.Handle),
			zap.String("theme_key", resolved.Theme.Key),
		)
	}

	sections := s.renderSections(tenant, page, components, resolved.Settings)

	return &domain.RenderDocument{
		Tenant: tenant.Summary(),
		Theme:  resolved,
		Layout: components.Layout,
		Page: domain.PageMeta{
			Slug:   page.Slug,
			Title:  page.Title,
			SEO:    page.SEO,
			IsHome: page.IsHome,
		},
		Sections: sections,
	}, nil
}

// renderSections maps sections through the active theme's renderers.
// A section whose type has no renderer, or whose renderer rejects its props,
// is skipped with a warning; one bad section never blanks the page.
func (s *CompositionService) renderSections(tenant *domain.Tenant, page *domain.Page, components theme.Components, settings domain.ThemeSettings) []domain.RenderedSection {
	out := make([]domain.RenderedSection, 0, len(page.Sections))
	for _, sec := range page.Sections {
		renderer, ok := components.Renderer(sec.Type)
		if !ok {
			metrics.SectionsSkipped.WithLabelValues(sec.Type).Inc()
			s.logger.Warn("no renderer for section type, skipping section",
				zap.String("tenant", tenant.Handle),
				zap.String("page", page.Slug),
				zap.String("section_type", sec.Type),
				zap.String("section_id", sec.ID.String()),
			)
			continue
		}

		rendered, err := renderer.Render(sec, settings)
		if err != nil {
			metrics.SectionsSkipped.WithLabelValues(sec.Type).Inc()
			s.logger.Warn("section failed to render, skipping section",
				zap.String("tenant", tenant.Handle),
				zap.String("page", page.Slug),
				zap.String("section_type", sec.Type),
				zap.String("section_id", sec.ID.String()),
				zap.Error(err),
			)
			continue
		}
		out = append(out, rendered)
	}
	return out
}
