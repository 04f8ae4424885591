package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/interfaces/http/middleware"
	"site-weaver.backend/internal/interfaces/http/response"
	"site-weaver.backend/internal/usecases"
)

// ApiKeyHandler handles API key management endpoints
type ApiKeyHandler struct {
	apiKeyUsecase *usecases.ApiKeyUsecase
	orgUsecase    *usecases.OrganizationUsecase
}

// NewApiKeyHandler creates a new API key handler
func NewApiKeyHandler(apiKeyUsecase *usecases.ApiKeyUsecase, orgUsecase *usecases.OrganizationUsecase) *ApiKeyHandler {
	return &ApiKeyHandler{apiKeyUsecase: apiKeyUsecase, orgUsecase: orgUsecase}
}

func (h *ApiKeyHandler) resolveOwnedOrg(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not found in context"))
		return uuid.Nil, false
	}

	orgID, err := uuid.Parse(c.Param("orgId"))
	if err != nil {
		response.Error(c, domainerrors.ValidationError("invalid organization id"))
		return uuid.Nil, false
	}

	if _, err := h.orgUsecase.GetOrganization(c.Request.Context(), userID, orgID); err != nil {
		response.Error(c, err)
		return uuid.Nil, false
	}
	return orgID, true
}

// Create mints a new API key. The raw key appears in this response only.
// POST /api/v1/admin/organizations/:orgId/api-keys
func (h *ApiKeyHandler) Create(c *gin.Context) {
	orgID, ok := h.resolveOwnedOrg(c)
	if !ok {
		return
	}

	var input entities.CreateApiKeyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.apiKeyUsecase.CreateApiKey(c.Request.Context(), orgID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// List lists the organization's keys, masked
// GET /api/v1/admin/organizations/:orgId/api-keys
func (h *ApiKeyHandler) List(c *gin.Context) {
	orgID, ok := h.resolveOwnedOrg(c)
	if !ok {
		return
	}

	keys, err := h.apiKeyUsecase.ListApiKeys(c.Request.Context(), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, keys)
}

// Revoke deactivates a key
// DELETE /api/v1/admin/organizations/:orgId/api-keys/:keyId
func (h *ApiKeyHandler) Revoke(c *gin.Context) {
	orgID, ok := h.resolveOwnedOrg(c)
	if !ok {
		return
	}

	keyID, err := uuid.Parse(c.Param("keyId"))
	if err != nil {
		response.Error(c, domainerrors.ValidationError("invalid key id"))
		return
	}

	if err := h.apiKeyUsecase.RevokeApiKey(c.Request.Context(), orgID, keyID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"revoked": true})
}
