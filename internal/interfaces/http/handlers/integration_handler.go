package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"site-weaver.backend/internal/interfaces/http/response"
	"site-weaver.backend/internal/usecases"
)

// IntegrationHandler handles external integration endpoints
type IntegrationHandler struct {
	integrationUsecase *usecases.IntegrationUsecase
}

// NewIntegrationHandler creates a new integration handler
func NewIntegrationHandler(integrationUsecase *usecases.IntegrationUsecase) *IntegrationHandler {
	return &IntegrationHandler{integrationUsecase: integrationUsecase}
}

// TestConnection probes the site's WordPress endpoint
// POST /api/v1/sites/:siteId/integration/test
func (h *IntegrationHandler) TestConnection(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	result, err := h.integrationUsecase.TestConnection(c.Request.Context(), site)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
