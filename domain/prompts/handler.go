package prompts

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetActive returns the prompt currently deployed to an environment.
// The optional name query parameter scopes the cache key for callers
// that serve several prompts per environment.
func (h *Handler) GetActive(c echo.Context) error {
	environment := c.Param("environment")
	name := c.QueryParam("name")

	snap, err := h.service.GetActive(c.Request().Context(), environment, name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}
