package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks that the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// StoragePinger checks that the image store is reachable.
type StoragePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db      Pinger
	storage StoragePinger
	timeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db Pinger, storage StoragePinger) *HealthHandler {
	return &HealthHandler{db: db, storage: storage, timeout: 2 * time.Second}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. Both the database and the image store must
// answer within the timeout.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	checks := gin.H{"database": "ok", "storage": "ok"}
	ready := true
	if err := h.db.PingContext(ctx); err != nil {
		log.Printf("healthHandler.Readiness: database ping failed: %v", err)
		checks["database"] = "unreachable"
		ready = false
	}
	if err := h.storage.Ping(ctx); err != nil {
		log.Printf("healthHandler.Readiness: storage ping failed: %v", err)
		checks["storage"] = "unreachable"
		ready = false
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}
