package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	mongo *mongo.Database
	redis *redis.Client
}

func NewHealthHandler(db *mongo.Database, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{mongo: db, redis: rdb}
}

// Liveness handles GET /health. Returns 200 immediately; confirms the
// process is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Readiness handles GET /health/ready. Checks MongoDB and Redis
// connectivity before declaring the service ready.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := map[string]dependencyStatus{
		"mongodb": pingStatus(h.mongo.Client().Ping(ctx, nil)),
		"redis":   pingStatus(h.redis.Ping(ctx).Err()),
	}

	status := "ok"
	httpStatus := http.StatusOK
	for _, d := range deps {
		if d.Status != "ok" {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}

func pingStatus(err error) dependencyStatus {
	if err != nil {
		return dependencyStatus{Status: "unhealthy", Error: err.Error()}
	}
	return dependencyStatus{Status: "ok"}
}
