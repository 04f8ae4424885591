package middleware

import (
	"github.com/gin-gonic/gin"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/interfaces/http/response"
)

// RequirePermission rejects requests whose API key lacks the capability.
// Fails closed when no authentication result is present.
func RequirePermission(permission entities.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, _ := GetAuthResult(c)
		if !auth.HasPermission(permission) {
			response.AbortWithError(c, domainerrors.Forbidden("missing permission: "+string(permission)))
			return
		}
		c.Next()
	}
}
