package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/hms-payment/pkg/config"
	"github.com/fatflowers/hms-payment/pkg/logctx"
)

const pingTimeout = 2 * time.Second

// Pinger reports storage reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string  `json:"status" example:"healthy"`
	Service   string  `json:"service" example:"payment-service"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime" example:"12.5"`
	Database  string  `json:"database" example:"connected"`
}

// @Summary      Liveness
// @Description  Reports that the process is running. No dependency is checked.
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /live [get]
func ApiLive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// @Summary      Readiness
// @Tags         System
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /ready [get]
func ApiReady(db Pinger, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ping(c.Request.Context(), db); err != nil {
			logctx.FromGin(c, log).Warnw("readiness_check_failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// @Summary      Health
// @Tags         System
// @Produce      json
// @Success      200  {object}  handlers.HealthResponse
// @Failure      503  {object}  handlers.HealthResponse
// @Router       /health [get]
func ApiHealth(db Pinger, started time.Time, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := HealthResponse{
			Status:    "healthy",
			Service:   cfgpkg.ServiceName,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Uptime:    time.Since(started).Seconds(),
			Database:  "connected",
		}
		code := http.StatusOK
		if err := ping(c.Request.Context(), db); err != nil {
			logctx.FromGin(c, log).Warnw("health_check_failed", "error", err)
			out.Status, out.Database = "unhealthy", "disconnected"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, out)
	}
}

func ping(ctx context.Context, db Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return db.Ping(ctx)
}

func RegisterHealthRoutes(r gin.IRouter, db Pinger, log *zap.SugaredLogger) {
	started := time.Now()
	r.GET("/live", ApiLive)
	r.GET("/ready", ApiReady(db, log))
	r.GET("/health", ApiHealth(db, started, log))
}
