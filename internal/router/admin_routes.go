package router

import (
	"github.com/labstack/echo/v4"

	"github.com/locaflow/locaflow/internal/handler"
	"github.com/locaflow/locaflow/internal/middleware"
	"github.com/locaflow/locaflow/internal/model"
)

// RegisterAdmin registers the superadmin dashboard endpoints under
// /v1/admin. SUPERADMIN accounts are provisioned out of band; there is no
// registration path for them.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleSuperadmin),
	)
	g.GET("/users", h.ListUsers)
	g.GET("/properties", h.ListProperties)
	g.GET("/audit", h.ListAuditLog)
}
