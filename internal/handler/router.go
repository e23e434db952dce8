package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/instportal/internal/metrics"
	"github.com/hitoshi/instportal/internal/middleware"
	"github.com/hitoshi/instportal/internal/session"
	"github.com/hitoshi/instportal/internal/view"
)

// RouterDeps bundles everything NewRouter needs.
type RouterDeps struct {
	Sessions *session.Manager
	Renderer *view.Renderer
	Logger   *slog.Logger

	AuthService         AuthServiceInterface
	RegistrationService RegistrationServiceInterface
	InstitutionService  InstitutionViewerInterface

	HealthChecker HealthChecker

	// Observability; all optional.
	Metrics     *metrics.Collector
	Gatherer    prometheus.Gatherer
	RateLimiter *middleware.RateLimiter
}

// NewRouter builds the chi router with the full middleware chain and every
// route of the portal.
//
// Middleware order, outermost first:
//
//	RequestID → Recovery → Metrics → SecurityHeaders → Session → Logging
//
// Session runs before Logging so request logs can carry the role.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewSessionMiddleware(deps.Sessions))

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r.Use(middleware.NewLoggingMiddleware(logger))

	// A typed nil *metrics.Collector must not reach the handlers as a
	// non-nil interface value.
	var loginMetrics LoginMetrics
	var regMetrics RegistrationMetrics
	if deps.Metrics != nil {
		loginMetrics = deps.Metrics
		regMetrics = deps.Metrics
	}

	pageHandler := NewPageHandler(deps.Renderer)
	authHandler := NewAuthHandler(deps.AuthService, deps.Sessions, loginMetrics)
	regHandler := NewRegistrationHandler(deps.RegistrationService, regMetrics)
	instHandler := NewInstitutionHandler(deps.InstitutionService, deps.Renderer)

	// Pages
	r.Get("/", pageHandler.Login)
	r.Get("/signup", pageHandler.Signup)

	// Form POSTs, rate limited per client IP
	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.WriteMiddleware())
		}
		r.Post("/login", authHandler.Login)
		r.Post("/register", regHandler.Register)
	})

	// Session-backed pages
	r.Get("/logout", authHandler.Logout)
	r.Get("/profile", instHandler.Profile)
	r.Get("/institution_dashboard", instHandler.Dashboard)
	r.Get("/authority_dashboard", instHandler.AuthorityDashboard)

	// Operational endpoints
	r.Get("/health", NewHealthHandler(deps.HealthChecker))
	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	return r
}
