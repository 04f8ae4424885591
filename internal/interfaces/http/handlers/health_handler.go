package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"site-weaver.backend/internal/interfaces/http/response"
)

// HealthHandler handles liveness checks
type HealthHandler struct{}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports service liveness
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}
