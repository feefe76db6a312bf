package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/conterGui/Aconchego-Pap/internal/jobs/background"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 3 * time.Second

// Pinger is implemented by the database pool and the cache service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JobStatusProvider reports the background jobs.
type JobStatusProvider interface {
	Status() []background.JobStatus
}

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db        Pinger
	cache     Pinger
	scheduler JobStatusProvider
	version   string
	startedAt time.Time
}

// NewHealthHandlers creates a new health handlers instance. scheduler may be nil.
func NewHealthHandlers(db, cache Pinger, scheduler JobStatusProvider, version string) *HealthHandlers {
	return &HealthHandlers{
		db:        db,
		cache:     cache,
		scheduler: scheduler,
		version:   version,
		startedAt: time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Services  map[string]string      `json:"services"`
	Uptime    string                 `json:"uptime"`
	Version   string                 `json:"version"`
	Jobs      []background.JobStatus `json:"jobs,omitempty"`
}

func (h *HealthHandlers) check(ctx context.Context) *HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
		Version:   h.version,
	}
	for name, dep := range map[string]Pinger{"database": h.db, "redis": h.cache} {
		if err := dep.Ping(ctx); err != nil {
			health.Services[name] = "unhealthy"
			health.Status = "degraded"
		} else {
			health.Services[name] = "healthy"
		}
	}
	return health
}

// HealthCheck handles GET /health. It always answers 200 while the process is up.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, h.check(c.Request().Context()))
}

// ReadinessCheck handles GET /health/ready
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	health := h.check(c.Request().Context())
	if h.scheduler != nil {
		health.Jobs = h.scheduler.Status()
	}
	if health.Status != "healthy" {
		return c.JSON(http.StatusServiceUnavailable, health)
	}
	return c.JSON(http.StatusOK, health)
}
