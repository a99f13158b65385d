package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler exposes service health endpoints
type SystemHandler struct {
	BaseHandler
	appName string
	version string
	pinger  Pinger
	started time.Time
}

// Pinger reports whether the backing database is reachable
type Pinger interface {
	Ping() error
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(appName, version string, pinger Pinger) *SystemHandler {
	return &SystemHandler{
		appName: appName,
		version: version,
		pinger:  pinger,
		started: time.Now(),
	}
}

// RegisterRoutes registers the system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports liveness and database reachability
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK
	dbStatus := "ok"

	if h.pinger != nil {
		if err := h.pinger.Ping(); err != nil {
			status = "degraded"
			dbStatus = "unreachable"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":   status,
		"app":      h.appName,
		"version":  h.version,
		"database": dbStatus,
		"uptime":   time.Since(h.started).Truncate(time.Second).String(),
	})
}
