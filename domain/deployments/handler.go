package deployments

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/promptops-dev/promptops/pkg/apperror"
)

// Handler handles HTTP requests for deployments
type Handler struct {
	svc *Service
}

// NewHandler creates a new deployments handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Deploy activates a version in an environment
// POST /api/deploy
func (h *Handler) Deploy(c echo.Context) error {
	var req DeployRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}

	if req.DeployedBy == "" {
		req.DeployedBy = "unknown"
	}

	d, err := h.svc.Deploy(c.Request().Context(), req.Environment, req.VersionHash, req.DeployedBy)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DeployResponse{
		Success:     true,
		VersionHash: d.Version.Hash,
		Environment: d.Environment,
		DeployedAt:  d.DeployedAt,
		Message:     fmt.Sprintf("Successfully deployed %s to %s", d.Version.ShortHash(), d.Environment),
	})
}

// Rollback reactivates the previous version in an environment
// POST /api/rollback/:environment
func (h *Handler) Rollback(c echo.Context) error {
	environment := c.Param("environment")

	d, err := h.svc.Rollback(c.Request().Context(), environment)
	if err != nil {
		return err
	}

	rolledBackTo := d.VersionID
	if d.Version != nil {
		rolledBackTo = d.Version.Hash
	}

	return c.JSON(http.StatusOK, RollbackResponse{
		Success:      true,
		Environment:  environment,
		RolledBackTo: rolledBackTo,
		Message:      fmt.Sprintf("Rolled back %s to previous version", environment),
	})
}

// History returns the deployment audit trail for an environment
// GET /api/deployments/:environment/history?limit=
func (h *Handler) History(c echo.Context) error {
	environment := c.Param("environment")

	limit := DefaultHistoryLimit
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	ds, err := h.svc.History(c.Request().Context(), environment, limit)
	if err != nil {
		return err
	}

	entries := make([]HistoryEntry, len(ds))
	for i, d := range ds {
		entry := HistoryEntry{
			DeployedAt: d.DeployedAt,
			DeployedBy: d.DeployedBy,
			IsActive:   d.IsActive,
			Action:     d.Action,
		}
		if d.Version != nil {
			entry.VersionHash = d.Version.ShortHash()
		}
		entries[i] = entry
	}

	return c.JSON(http.StatusOK, HistoryResponse{
		Environment: environment,
		Count:       len(entries),
		Deployments: entries,
	})
}

// GetActive returns the active deployment for an environment
// GET /api/deployments/:environment/active
func (h *Handler) GetActive(c echo.Context) error {
	d, err := h.svc.GetActive(c.Request().Context(), c.Param("environment"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, d)
}
