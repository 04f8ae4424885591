package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/interfaces/http/response"
	"site-weaver.backend/internal/usecases"
)

// WebhookHandler handles webhook registration endpoints
type WebhookHandler struct {
	webhookUsecase *usecases.WebhookUsecase
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(webhookUsecase *usecases.WebhookUsecase) *WebhookHandler {
	return &WebhookHandler{webhookUsecase: webhookUsecase}
}

// Create registers an endpoint; the signing secret appears only here
// POST /api/v1/sites/:siteId/webhooks
func (h *WebhookHandler) Create(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	var input entities.CreateWebhookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	webhook, secret, err := h.webhookUsecase.CreateWebhook(c.Request.Context(), site.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"webhook": webhook,
		"secret":  secret,
	})
}

// List lists the site's endpoints, secrets withheld
// GET /api/v1/sites/:siteId/webhooks
func (h *WebhookHandler) List(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	webhooks, err := h.webhookUsecase.ListWebhooks(c.Request.Context(), site.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, webhooks)
}

// Delete removes a registration
// DELETE /api/v1/sites/:siteId/webhooks/:webhookId
func (h *WebhookHandler) Delete(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	webhookID, err := uuid.Parse(c.Param("webhookId"))
	if err != nil {
		response.Error(c, domainerrors.ValidationError("invalid webhook id"))
		return
	}

	if err := h.webhookUsecase.DeleteWebhook(c.Request.Context(), site.ID, webhookID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
