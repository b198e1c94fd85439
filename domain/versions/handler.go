package versions

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/promptops-dev/promptops/pkg/apperror"
)

// Handler handles HTTP requests for the version store
type Handler struct {
	svc *Service
}

// NewHandler creates a new versions handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Commit creates a new version (or returns the existing one on a hash hit)
// POST /api/versions
func (h *Handler) Commit(c echo.Context) error {
	var req CommitRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}

	if req.Author == "" {
		req.Author = "unknown"
	}

	v, err := h.svc.Commit(c.Request().Context(), CommitParams{
		Content:  req.Content,
		Metadata: req.Metadata,
		Tags:     req.Tags,
		Author:   req.Author,
		Message:  req.Message,
		ParentID: req.ParentID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, v)
}

// Get returns a version by hash
// GET /api/versions/:hash
func (h *Handler) Get(c echo.Context) error {
	v, err := h.svc.GetByHash(c.Request().Context(), c.Param("hash"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, v)
}

// Diff returns the unified diff between two versions
// GET /api/versions/:hash/diff/:other
func (h *Handler) Diff(c echo.Context) error {
	result, err := h.svc.Diff(c.Request().Context(), c.Param("hash"), c.Param("other"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Lineage returns the commit events for a version
// GET /api/versions/:hash/events?limit=
func (h *Handler) Lineage(c echo.Context) error {
	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	events, err := h.svc.Lineage(c.Request().Context(), c.Param("hash"), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LineageResponse{
		Count:  len(events),
		Events: events,
	})
}

// History returns the version history walk
// GET /api/history?start_id=&limit=
func (h *Handler) History(c echo.Context) error {
	limit := DefaultHistoryLimit
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	history, err := h.svc.History(c.Request().Context(), c.QueryParam("start_id"), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, HistoryResponse{
		Count:    len(history),
		Versions: history,
	})
}
