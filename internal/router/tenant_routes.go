package router

import (
	"github.com/labstack/echo/v4"

	"github.com/locaflow/locaflow/internal/handler"
	"github.com/locaflow/locaflow/internal/middleware"
	"github.com/locaflow/locaflow/internal/model"
)

// RegisterTenant registers tenant-scoped endpoints under /v1/tenant. All
// routes require a valid JWT and the TENANT role.
func RegisterTenant(e *echo.Echo, h *handler.TenantHandler, jwtSecret string) {
	g := e.Group(
		"/v1/tenant",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleTenant),
	)
	g.GET("/preferences", h.GetPreferences)
	g.PUT("/preferences", h.UpdatePreferences)

	g.POST("/applications", h.CreateApplication)
	g.GET("/applications", h.ListApplications)
}
