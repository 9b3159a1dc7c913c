package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"performer-directory-backend/internal/models"
)

// HealthHandler godoc
// @Summary     Health check
// @Description Returns the health status of the API
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: "ok"})
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadyHandler reports 503 while the database is unreachable. A nil pinger
// means the service runs without a direct connection and is always ready.
func ReadyHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "database unreachable", Message: err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, models.HealthResponse{Status: "ready"})
	}
}
