package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"attendance-service/internal/database"
)

const serviceName = "attendance-service"

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
	jobs  func() []string
}

// NewHealthHandler creates a HealthHandler. redis and jobs may be nil.
func NewHealthHandler(db *gorm.DB, redis *redis.Client, jobs func() []string) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redis,
		jobs:  jobs,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": serviceName,
	})
}

// Ready reports 503 while the ledger or a configured redis is unreachable
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	connections := make(map[string]string)
	hasError := false

	if err := database.Ping(ctx, h.db); err != nil {
		connections["database"] = "error: " + err.Error()
		hasError = true
	} else {
		connections["database"] = "connected"
	}

	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			connections["redis"] = "error: " + err.Error()
			hasError = true
		} else {
			connections["redis"] = "connected"
		}
	} else {
		connections["redis"] = "not configured"
	}

	status := http.StatusOK
	statusText := "ready"
	if hasError {
		status = http.StatusServiceUnavailable
		statusText = "not ready"
	}

	body := gin.H{
		"status":      statusText,
		"connections": connections,
	}
	if h.jobs != nil {
		body["jobs"] = h.jobs()
	}
	c.JSON(status, body)
}
