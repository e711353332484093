package router

import (
	"github.com/labstack/echo/v4"

	"github.com/locaflow/locaflow/internal/handler"
	"github.com/locaflow/locaflow/internal/middleware"
	"github.com/locaflow/locaflow/internal/model"
)

// RegisterOwner registers owner-scoped endpoints under /v1/owner. All routes
// require a valid JWT and the OWNER role. Owners manage their published
// listing, review applications and keep compliance documents.
func RegisterOwner(e *echo.Echo, h *handler.OwnerHandler, jwtSecret string) {
	g := e.Group(
		"/v1/owner",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleOwner),
	)
	g.GET("/property", h.GetProperty)
	g.PUT("/property", h.UpdateProperty)
	g.POST("/property/archive", h.ArchiveProperty)

	g.GET("/applications", h.ListApplications)
	g.PATCH("/applications/:id", h.SetApplicationStatus)

	g.POST("/documents", h.CreateDocument)
	g.GET("/documents", h.ListDocuments)
}
