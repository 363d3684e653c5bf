package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/storefrontlabs/storefront-api/internal/api/report"
)

// Pinger reports store connectivity for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles GET /health — liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) report.Outcome {
	_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	return report.OK()
}

// HealthDependenciesHandler handles GET /health/ready — readiness probe.
// Checks PostgreSQL and Redis connectivity before declaring the service
// ready. Redis is optional: when nil it is skipped.
type HealthDependenciesHandler struct {
	store Pinger
	redis *redis.Client
}

func NewHealthDependenciesHandler(store Pinger, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{store: store, redis: rdb}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) report.Outcome {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	if err := h.store.Ping(ctx); err != nil {
		deps["postgres"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
		healthy = false
	} else {
		deps["postgres"] = dependencyStatus{Status: "ok"}
	}

	if h.redis != nil {
		if _, err := h.redis.Ping(ctx).Result(); err != nil {
			deps["redis"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["redis"] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	_ = c.JSON(httpStatus, readinessResponse{Status: status, Dependencies: deps})
	if !healthy {
		return report.General("dependencies degraded")
	}
	return report.OK()
}
