package routes

import (
	"github.com/JeanneDioso/storefront/internal/auth"
	"github.com/JeanneDioso/storefront/internal/handlers"
	"github.com/JeanneDioso/storefront/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	orderHandler *handlers.OrderHandler,
	tokenManager *auth.TokenManager,
	revocationChecker auth.TokenRevocationChecker,
) {
	// Rate limiting config for auth endpoints
	rateLimitConfig := middleware.DefaultAuthRateLimit()

	// Public routes - no authentication required
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/register", authHandler.Register)
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/login", authHandler.Login)

	// Protected routes - authentication required
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokenManager, revocationChecker))

		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)

		r.Post("/orders", orderHandler.Create)
	})
}
