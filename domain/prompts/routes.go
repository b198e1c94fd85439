package prompts

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the prompt serving routes
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api")

	g.GET("/prompts/:environment/active", h.GetActive)
}
