package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DBPinger reports database connectivity; satisfied by *pgxpool.Pool
type DBPinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db DBPinger
}

func NewHealthHandler(db DBPinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /health - returns API health status
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pluglr-auth-api",
		"version": "v1.0.0",
	})
}

// Readiness handles GET /ready - checks database connectivity
func (h *HealthHandler) Readiness(c *gin.Context) {
	readiness := "ready"
	dbStatus := "ok"
	status := http.StatusOK

	if err := h.db.Ping(c.Request.Context()); err != nil {
		readiness = "not ready"
		dbStatus = "unreachable"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status": readiness,
		"checks": gin.H{
			"api":      "ok",
			"database": dbStatus,
		},
	})
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Readiness)
}
