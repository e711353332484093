// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/locaflow/locaflow/internal/handler"
	"github.com/locaflow/locaflow/internal/metrics"
	"github.com/locaflow/locaflow/internal/middleware"
	"github.com/locaflow/locaflow/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check and the Prometheus scrape
// endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}

// RegisterAuth registers the authentication routes and the protected /v1/me
// endpoint. Unauthenticated operations live under /v1/auth; protected ones
// under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token or a refresh token in the body,
	// so it is registered without the JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterOnboarding registers the wizard draft endpoints and the terminal
// complete transition. Both owners and tenants use them; superadmins have
// no onboarding flow and are rejected in the handler.
func RegisterOnboarding(e *echo.Echo, h *handler.OnboardingHandler, jwtSecret string) {
	g := e.Group(
		"/api/onboarding",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOwner, model.RoleTenant),
	)
	g.GET("/draft", h.GetDraft)
	g.PUT("/draft", h.SaveDraft)
	g.POST("/complete", h.Complete)
}
