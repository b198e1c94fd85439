package versions

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers version store routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api")

	g.POST("/versions", h.Commit)
	g.GET("/versions/:hash", h.Get)
	g.GET("/versions/:hash/diff/:other", h.Diff)
	g.GET("/versions/:hash/events", h.Lineage)
	g.GET("/history", h.History)
}
