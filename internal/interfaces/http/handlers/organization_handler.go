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

// OrganizationHandler handles organization management endpoints
type OrganizationHandler struct {
	orgUsecase *usecases.OrganizationUsecase
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(orgUsecase *usecases.OrganizationUsecase) *OrganizationHandler {
	return &OrganizationHandler{orgUsecase: orgUsecase}
}

// Create handles organization creation
// POST /api/v1/admin/organizations
func (h *OrganizationHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not found in context"))
		return
	}

	var input entities.CreateOrganizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	org, err := h.orgUsecase.CreateOrganization(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, org)
}

// List lists the caller's organizations
// GET /api/v1/admin/organizations
func (h *OrganizationHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not found in context"))
		return
	}

	orgs, err := h.orgUsecase.ListOrganizations(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, orgs)
}

// Get fetches one organization
// GET /api/v1/admin/organizations/:orgId
func (h *OrganizationHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not found in context"))
		return
	}

	orgID, err := uuid.Parse(c.Param("orgId"))
	if err != nil {
		response.Error(c, domainerrors.ValidationError("invalid organization id"))
		return
	}

	org, err := h.orgUsecase.GetOrganization(c.Request.Context(), userID, orgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, org)
}
