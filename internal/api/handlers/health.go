package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fairwaylabs/roundsim/internal/dispersion"
)

// HealthStatus is the health endpoint payload
type HealthStatus struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	redis  *redis.Client
	logger *logrus.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(redis *redis.Client, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{redis: redis, logger: logger}
}

// GetHealth returns the basic health status
func (h *HealthHandler) GetHealth(c *gin.Context) {
	response := HealthStatus{
		Status:    "ok",
		Service:   "roundsim",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	// Redis only persists calibration; the simulator works without it
	if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
		response.Status = "degraded"
		response.Checks["redis"] = "failed: " + err.Error()
	} else {
		response.Checks["redis"] = "ok"
	}

	state := dispersion.Snapshot()
	if state == dispersion.Identity() {
		response.Checks["calibration"] = "uncalibrated"
	} else {
		response.Checks["calibration"] = "active"
	}

	statusCode := http.StatusOK
	if response.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}

	c.JSON(statusCode, response)
}
