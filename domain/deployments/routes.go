package deployments

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers deployment routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api")

	g.POST("/deploy", h.Deploy)
	g.POST("/rollback/:environment", h.Rollback)
	g.GET("/deployments/:environment/active", h.GetActive)
	g.GET("/deployments/:environment/history", h.History)
}
