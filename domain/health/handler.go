package health

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/promptops-dev/promptops/internal/cache"
	"github.com/promptops-dev/promptops/internal/version"
)

// Handler handles health check requests
type Handler struct {
	pool    *pgxpool.Pool
	cache   *cache.Cache
	startAt time.Time
}

// NewHandler creates a new health handler
func NewHandler(pool *pgxpool.Pool, c *cache.Cache) *Handler {
	return &Handler{
		pool:    pool,
		cache:   c,
		startAt: time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

// Check represents an individual health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Root returns the service banner
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "promptops",
		"version": version.Version,
		"status":  "running",
	})
}

// Health returns the overall service health. The database is a hard
// dependency; the cache is not, so a cache failure degrades the status
// without failing the check.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	dbCheck := Check{Status: "healthy"}
	if err := h.pool.Ping(ctx); err != nil {
		dbCheck = Check{Status: "unhealthy", Message: err.Error()}
	}

	cacheCheck := Check{Status: "healthy"}
	if err := h.cache.Ping(ctx); err != nil {
		cacheCheck = Check{Status: "degraded", Message: err.Error()}
	}

	overallStatus := "healthy"
	switch {
	case dbCheck.Status == "unhealthy":
		overallStatus = "unhealthy"
	case cacheCheck.Status == "degraded":
		overallStatus = "degraded"
	}

	response := HealthResponse{
		Status:    overallStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startAt).String(),
		Version:   version.Version,
		Checks: map[string]Check{
			"database": dbCheck,
			"cache":    cacheCheck,
		},
	}

	statusCode := http.StatusOK
	if overallStatus == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, response)
}

// Healthz returns a simple health check (for k8s liveness probe)
func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Ready returns readiness status (for k8s readiness probe)
func (h *Handler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.pool.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status":  "not_ready",
			"message": "Database connection failed",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status": "ready",
	})
}
