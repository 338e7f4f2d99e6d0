package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/openshelf/storefront/internal/api/handlers"
	mw "github.com/openshelf/storefront/internal/api/middleware"
	"github.com/openshelf/storefront/internal/cache"
	"github.com/openshelf/storefront/internal/config"
	"github.com/openshelf/storefront/internal/domain"
	"github.com/openshelf/storefront/internal/service"
	"github.com/openshelf/storefront/internal/store"
	"github.com/openshelf/storefront/internal/tenancy"
	"github.com/openshelf/storefront/internal/theme"
)

// App holds the router and its wired dependencies.
type App struct {
	Router   *chi.Mux
	Resolver *tenancy.Resolver
}

func NewApp(db *pgxpool.Pool, tenantCache cache.TenantCache, logger *zap.Logger) *App {
	// Stores
	tenantStore := store.NewTenantStore(db)
	pageStore := store.NewPageStore(db)
	themeStore := store.NewThemeSettingStore(db)
	productStore := store.NewProductStore(db)

	// Core pipeline
	resolver := tenancy.NewResolver(tenantStore, tenantCache, config.ReservedSegments(), config.TenantCacheTTL(), logger)
	registry := theme.NewRegistry(logger)

	// Services
	pageSvc := service.NewPageService(pageStore)
	themeSvc := service.NewThemeService(themeStore)
	composeSvc := service.NewCompositionService(resolver, pageSvc, themeSvc, registry, logger)

	// Handlers
	tenantHandler := handlers.NewTenantHandler(tenantStore, tenantCache)
	storefrontHandler := handlers.NewStorefrontHandler(pageSvc, themeSvc, composeSvc)
	productHandler := handlers.NewProductHandler(productStore)

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Metrics)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health and metrics (no tenant)
	r.Get("/health", healthHandler(db))
	r.Handle("/metrics", promhttp.Handler())

	// Tenant onboarding/admin (no tenant scope; operates across tenants)
	r.Route("/v1/tenants", func(r chi.Router) {
		r.Post("/", tenantHandler.Create)
		r.Post("/{id}/domains", tenantHandler.AddDomain)
		r.Delete("/{id}/domains/{host}", tenantHandler.RemoveDomain)
		r.Patch("/{id}/status", tenantHandler.UpdateStatus)
	})

	// Storefront data API. The tenant comes from the Host header (custom
	// domain) or the {tenantHandle} segment; "storefront" is reserved so
	// the path walker lands on the handle either way.
	r.Route("/storefront/{tenantHandle}", func(r chi.Router) {
		r.Use(mw.ResolveTenant(resolver))
		r.Get("/", storefrontHandler.Home)
		r.Get("/pages", storefrontHandler.ListPages)
		r.Get("/page/{slug}", storefrontHandler.GetPage)
		r.Get("/render/{slug}", storefrontHandler.RenderPage)
		r.Get("/theme", storefrontHandler.GetTheme)
		r.Get("/products", productHandler.List)
		r.Get("/products/{id}", productHandler.GetByID)
		r.Get("/categories/{slug}/products", productHandler.ListByCategory)
	})

	// Custom-domain storefront roots: requests arriving on a bound host
	// render directly without the /storefront prefix.
	r.Group(func(r chi.Router) {
		r.Use(mw.ResolveTenant(resolver))
		r.Get("/", storefrontHandler.Home)
		r.Get("/page/{slug}", storefrontHandler.RenderPage)
	})

	return &App{Router: r, Resolver: resolver}
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// Ensure stores satisfy the domain contracts at compile time.
var (
	_ domain.TenantStore       = (*store.TenantStore)(nil)
	_ domain.PageStore         = (*store.PageStore)(nil)
	_ domain.ThemeSettingStore = (*store.ThemeSettingStore)(nil)
	_ domain.ProductStore      = (*store.ProductStore)(nil)
	_ cache.TenantCache        = (*cache.MemoryCache)(nil)
	_ cache.TenantCache        = (*cache.RedisCache)(nil)
)
