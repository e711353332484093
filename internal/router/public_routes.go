package router

import (
	"github.com/labstack/echo/v4"

	"github.com/locaflow/locaflow/internal/handler"
)

// RegisterPublic registers the unauthenticated browse endpoints. Extra
// middleware (rate limiting, response caching) is passed in by the caller
// so the wiring stays in main.
func RegisterPublic(e *echo.Echo, h *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	g.GET("/listings", h.ListListings)
	g.GET("/listings/:slug", h.GetListing)
	g.GET("/seasonal", h.ListSeasonal)
}
