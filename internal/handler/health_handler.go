package handler

import (
	"github.com/gin-gonic/gin"
)

// HealthHandler serves liveness checks. The service is stateless with no
// backing store, so liveness is the only meaningful probe.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	RespondOK(c, gin.H{"status": "ok"})
}
