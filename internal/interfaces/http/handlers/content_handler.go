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

// ContentHandler handles content type and entry endpoints on the external
// data plane. The site is resolved by the access middleware.
type ContentHandler struct {
	contentUsecase *usecases.ContentUsecase
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentUsecase *usecases.ContentUsecase) *ContentHandler {
	return &ContentHandler{contentUsecase: contentUsecase}
}

func currentSite(c *gin.Context) (*entities.Site, bool) {
	site, ok := middleware.GetSite(c)
	if !ok {
		response.Error(c, domainerrors.Forbidden("forbidden"))
		return nil, false
	}
	return site, true
}

// CreateContentType defines an entry schema
// POST /api/v1/sites/:siteId/content-types
func (h *ContentHandler) CreateContentType(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	var input entities.CreateContentTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	contentType, err := h.contentUsecase.CreateContentType(c.Request.Context(), site.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, contentType)
}

// ListContentTypes lists the site's schemas
// GET /api/v1/sites/:siteId/content-types
func (h *ContentHandler) ListContentTypes(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	types, err := h.contentUsecase.ListContentTypes(c.Request.Context(), site.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, types)
}

// CreateEntry creates an entry
// POST /api/v1/sites/:siteId/entries
func (h *ContentHandler) CreateEntry(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	var input entities.CreateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	entry, err := h.contentUsecase.CreateEntry(c.Request.Context(), site.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, entry)
}

// ListEntries returns a page of entries, optionally filtered by content type
// GET /api/v1/sites/:siteId/entries?content_type=<uuid>&page=&per_page=
func (h *ContentHandler) ListEntries(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	var contentTypeID *uuid.UUID
	if raw := c.Query("content_type"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.ValidationError("invalid content_type filter"))
			return
		}
		contentTypeID = &id
	}

	params := utils.ParsePaginationParams(c.Query("page"), c.Query("per_page"))
	entries, meta, err := h.contentUsecase.ListEntries(c.Request.Context(), site.ID, contentTypeID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, entries, meta)
}

// GetEntry fetches one entry
// GET /api/v1/sites/:siteId/entries/:entryId
func (h *ContentHandler) GetEntry(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		response.Error(c, domainerrors.ValidationError("invalid entry id"))
		return
	}

	entry, err := h.contentUsecase.GetEntry(c.Request.Context(), site.ID, entryID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, entry)
}

// UpdateEntry applies a partial update
// PATCH /api/v1/sites/:siteId/entries/:entryId
func (h *ContentHandler) UpdateEntry(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		response.Error(c, domainerrors.ValidationError("invalid entry id"))
		return
	}

	var input entities.UpdateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	entry, err := h.contentUsecase.UpdateEntry(c.Request.Context(), site.ID, entryID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, entry)
}

// DeleteEntry soft-deletes an entry
// DELETE /api/v1/sites/:siteId/entries/:entryId
func (h *ContentHandler) DeleteEntry(c *gin.Context) {
	site, ok := currentSite(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		response.Error(c, domainerrors.ValidationError("invalid entry id"))
		return
	}

	if err := h.contentUsecase.DeleteEntry(c.Request.Context(), site.ID, entryID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
