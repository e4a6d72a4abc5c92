package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/foodordering/food-server-go/internal/config"
	"github.com/foodordering/food-server-go/internal/handler"
	"github.com/foodordering/food-server-go/internal/metrics"
	"github.com/foodordering/food-server-go/internal/middleware"
	"github.com/foodordering/food-server-go/internal/service"
)

type routerDeps struct {
	cfg             *config.Config
	authService     *service.AuthService
	customerService *service.CustomerService
	addressService  *service.AddressService
	rateLimiter     middleware.RateLimitChecker
	registry        *prometheus.Registry
	healthChecks    map[string]handler.HealthCheck
}

func newRouter(deps routerDeps) http.Handler {
	authMiddleware := middleware.NewAuthMiddleware(deps.authService)
	loginRateLimit := middleware.NewIPRateLimitMiddleware(
		deps.rateLimiter, deps.cfg.LoginRateLimitPerMin, config.LoginRateLimitWindow, "login",
	)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(config.MaxRequestBodyBytes)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(deps.cfg.IsProduction())
	corsMiddleware := middleware.NewCORSMiddleware(deps.cfg.CORSAllowedOrigin)

	customerHandler := handler.NewCustomerHandler(deps.customerService, deps.authService, loginRateLimit.Handler)
	addressHandler := handler.NewAddressHandler(deps.addressService, authMiddleware.Handler)
	healthHandler := handler.NewHealthHandler(deps.healthChecks)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(corsMiddleware.Handler)
	r.Use(securityHeadersMiddleware.Handler)
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", metrics.Handler(deps.registry))

	r.Mount("/customer", customerHandler.Routes())
	r.Mount("/address", addressHandler.Routes())
	r.Get("/states", addressHandler.ListStates)

	return r
}
