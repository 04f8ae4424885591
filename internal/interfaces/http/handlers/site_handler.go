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
	"site-weaver.backend/pkg/utils"
)

// SiteHandler handles site management and delivery endpoints
type SiteHandler struct {
	siteUsecase *usecases.SiteUsecase
	orgUsecase  *usecases.OrganizationUsecase
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(siteUsecase *usecases.SiteUsecase, orgUsecase *usecases.OrganizationUsecase) *SiteHandler {
	return &SiteHandler{siteUsecase: siteUsecase, orgUsecase: orgUsecase}
}

// resolveOwnedOrg parses :orgId and verifies the caller owns it.
func (h *SiteHandler) resolveOwnedOrg(c *gin.Context) (uuid.UUID, bool) {
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

// Create handles site creation
// POST /api/v1/admin/organizations/:orgId/sites
func (h *SiteHandler) Create(c *gin.Context) {
	orgID, ok := h.resolveOwnedOrg(c)
	if !ok {
		return
	}

	var input entities.CreateSiteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	site, err := h.siteUsecase.CreateSite(c.Request.Context(), orgID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, site)
}

// List returns a page of the organization's sites
// GET /api/v1/admin/organizations/:orgId/sites
func (h *SiteHandler) List(c *gin.Context) {
	orgID, ok := h.resolveOwnedOrg(c)
	if !ok {
		return
	}

	params := utils.ParsePaginationParams(c.Query("page"), c.Query("per_page"))
	sites, meta, err := h.siteUsecase.ListSites(c.Request.Context(), orgID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, sites, meta)
}

// Update handles partial site updates
// PATCH /api/v1/admin/organizations/:orgId/sites/:siteId
func (h *SiteHandler) Update(c *gin.Context) {
	orgID, ok := h.resolveOwnedOrg(c)
	if !ok {
		return
	}

	siteID, err := uuid.Parse(c.Param("siteId"))
	if err != nil {
		response.Error(c, domainerrors.ValidationError("invalid site id"))
		return
	}

	var input entities.UpdateSiteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	site, err := h.siteUsecase.UpdateSite(c.Request.Context(), orgID, siteID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, site)
}

// Delete handles site deletion
// DELETE /api/v1/admin/organizations/:orgId/sites/:siteId
func (h *SiteHandler) Delete(c *gin.Context) {
	orgID, ok := h.resolveOwnedOrg(c)
	if !ok {
		return
	}

	siteID, err := uuid.Parse(c.Param("siteId"))
	if err != nil {
		response.Error(c, domainerrors.ValidationError("invalid site id"))
		return
	}

	if err := h.siteUsecase.DeleteSite(c.Request.Context(), orgID, siteID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// GetForApiKey returns the site resolved by the access middleware
// GET /api/v1/sites/:siteId
func (h *SiteHandler) GetForApiKey(c *gin.Context) {
	site, ok := middleware.GetSite(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("forbidden"))
		return
	}
	response.Success(c, http.StatusOK, site)
}
