package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kingpotter-hr/full9-website/internal/auth"
	"github.com/kingpotter-hr/full9-website/internal/cache"
	"github.com/kingpotter-hr/full9-website/internal/handler"
	"github.com/kingpotter-hr/full9-website/internal/metrics"
	"github.com/kingpotter-hr/full9-website/internal/middleware"
	"github.com/kingpotter-hr/full9-website/internal/service"
)

// multipartOverhead is added to the upload cap for form boundaries and headers.
const multipartOverhead = 64 << 10

// RateLimit is a per-IP budget for one route group.
type RateLimit struct {
	PerMinute int
	Burst     int
}

// Deps holds everything the router dispatches to.
type Deps struct {
	Logger  *slog.Logger
	Metrics metrics.Recorder

	// MetricsHandler serves GET /metrics; the route is omitted when nil.
	MetricsHandler http.Handler

	Issuer       *auth.Issuer
	Revocations  middleware.RevocationChecker
	Limiter      cache.Limiter
	LoginLimit   RateLimit
	InquiryLimit RateLimit

	Auth     *service.AuthService
	Content  *service.ContentService
	Catalog  *service.CatalogService
	Inquiry  *service.InquiryService
	Settings *service.SettingsService
	Uploads  *service.UploadService

	// HealthCheckers are pinged by GET /readyz, keyed by dependency name.
	HealthCheckers map[string]handler.HealthChecker

	IsDevelopment bool
	CORSOrigins   []string
	MaxBodyBytes  int64
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(d Deps) *chi.Mux {
	logger := d.Logger
	recorder := d.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	h := handler.New("Full 9 API")
	healthHandler := handler.NewHealthHandler(d.HealthCheckers)
	authHandler := handler.NewAuthHandler(d.Auth, logger)
	contentHandler := handler.NewContentHandler(d.Content, logger)
	catalogHandler := handler.NewCatalogHandler(d.Catalog, logger)
	inquiryHandler := handler.NewInquiryHandler(d.Inquiry, logger)
	settingsHandler := handler.NewSettingsHandler(d.Settings, logger)
	uploadHandler := handler.NewUploadHandler(d.Uploads, logger)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.CORSOrigins

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger, recorder))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: d.IsDevelopment}))
	r.Use(middleware.CORS(corsCfg))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHandler)
	}
	r.Get("/", h.Index)

	requireAuth := middleware.RequireAuth(middleware.AuthConfig{
		Logger:      logger,
		Verifier:    d.Issuer,
		Metrics:     recorder,
		Revocations: d.Revocations,
	})
	limit := func(scope string, rl RateLimit) func(http.Handler) http.Handler {
		return middleware.RateLimitIP(middleware.RateLimitConfig{
			Logger:    logger,
			Limiter:   d.Limiter,
			Metrics:   recorder,
			Scope:     scope,
			PerMinute: rl.PerMinute,
			Burst:     rl.Burst,
		})
	}

	r.Route("/api", func(r chi.Router) {
		// Uploads carry their own, larger body cap.
		r.With(
			requireAuth,
			middleware.MaxBodySize(d.Uploads.MaxBytes()+multipartOverhead),
		).Post("/uploads", uploadHandler.Upload)

		r.Group(func(r chi.Router) {
			r.Use(middleware.MaxBodySize(d.MaxBodyBytes))

			r.Route("/auth", func(r chi.Router) {
				r.With(limit("login", d.LoginLimit)).Post("/login", authHandler.Login)
				r.Group(func(r chi.Router) {
					r.Use(requireAuth)
					r.Get("/me", authHandler.Me)
					r.Post("/change-password", authHandler.ChangePassword)
					r.Post("/logout", authHandler.Logout)
				})
			})

			r.Route("/content", func(r chi.Router) {
				r.Get("/", contentHandler.List)
				r.Get("/item/{key}", contentHandler.Get)
				r.Get("/{section}", contentHandler.ListSection)
				r.With(requireAuth).Post("/", contentHandler.Save)
				r.With(requireAuth).Delete("/{key}", contentHandler.Delete)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", catalogHandler.ListProducts)
				r.Get("/{id}", catalogHandler.GetProduct)
				r.Group(func(r chi.Router) {
					r.Use(requireAuth)
					r.Post("/", catalogHandler.CreateProduct)
					r.Put("/{id}", catalogHandler.UpdateProduct)
					r.Delete("/{id}", catalogHandler.DeleteProduct)
				})
			})

			r.Route("/portfolio", func(r chi.Router) {
				r.Get("/", catalogHandler.ListPortfolio)
				r.With(requireAuth).Get("/all", catalogHandler.ListAllPortfolio)
				r.Get("/{id}", catalogHandler.GetPortfolioItem)
				r.Group(func(r chi.Router) {
					r.Use(requireAuth)
					r.Post("/", catalogHandler.CreatePortfolioItem)
					r.Put("/{id}", catalogHandler.UpdatePortfolioItem)
					r.Delete("/{id}", catalogHandler.DeletePortfolioItem)
				})
			})

			r.Route("/inquiries", func(r chi.Router) {
				r.With(limit("inquiry", d.InquiryLimit)).Post("/", inquiryHandler.Submit)
				r.Group(func(r chi.Router) {
					r.Use(requireAuth)
					r.Get("/", inquiryHandler.List)
					r.Patch("/{id}/status", inquiryHandler.UpdateStatus)
					r.Delete("/{id}", inquiryHandler.Delete)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.Get)
				r.With(requireAuth).Put("/", settingsHandler.Update)
				r.With(requireAuth).Post("/", settingsHandler.Update)
			})
		})
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
