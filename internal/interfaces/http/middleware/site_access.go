package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/interfaces/http/response"
	"site-weaver.backend/internal/usecases"
)

const (
	// SiteParamKey is the route parameter naming the target site
	SiteParamKey = "siteId"
	// SiteKey is the context key holding the validated site
	SiteKey = "site"
)

// SiteAccessMiddleware resolves the :siteId route parameter and verifies the
// authenticated key may act on that site. Runs after ApiKeyAuthMiddleware.
func SiteAccessMiddleware(siteAccessUsecase *usecases.SiteAccessUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, ok := GetAuthResult(c)
		if !ok {
			response.AbortWithError(c, domainerrors.Unauthorized("missing API key"))
			return
		}

		siteID, err := uuid.Parse(c.Param(SiteParamKey))
		if err != nil {
			response.AbortWithError(c, domainerrors.ValidationError("invalid site id"))
			return
		}

		site, err := siteAccessUsecase.ValidateSiteAccess(c.Request.Context(), auth, siteID)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		c.Set(SiteKey, site)
		c.Next()
	}
}

// GetSite gets the validated site from context
func GetSite(c *gin.Context) (*entities.Site, bool) {
	value, exists := c.Get(SiteKey)
	if !exists {
		return nil, false
	}
	site, ok := value.(*entities.Site)
	return site, ok
}
