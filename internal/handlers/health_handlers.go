package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"boxtribute/internal/caching"
)

// HealthHandlers handles health check and readiness endpoints.
type HealthHandlers struct {
	db       *pgxpool.Pool
	cacheSvc caching.CacheService
}

func NewHealthHandlers(db *pgxpool.Pool, cacheSvc caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cacheSvc: cacheSvc}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck reports connectivity to the audit database and the cache.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	if err := h.db.Ping(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	// A cache miss is fine here; only a transport error marks the cache
	// unhealthy.
	if _, err := h.cacheSvc.GetBox(ctx, "health-check"); err != nil {
		health.Services["cache"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["cache"] = "healthy"
	}

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, health)
}

// ReadinessCheck reports that the process is up and serving.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
