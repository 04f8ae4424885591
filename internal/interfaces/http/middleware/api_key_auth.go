package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"site-weaver.backend/internal/domain/entities"
	"site-weaver.backend/internal/interfaces/http/response"
	"site-weaver.backend/internal/usecases"
)

const (
	// ApiKeyHeader is the dedicated header for API keys
	ApiKeyHeader = "X-API-Key"
	// AuthResultKey is the context key holding the authentication result
	AuthResultKey = "authResult"
)

// ApiKeyAuthMiddleware guards external data-plane routes. The key is read
// from X-API-Key or an Authorization bearer value; the resolved AuthResult is
// stored in the gin context for downstream middleware and handlers.
//
// Authentication hits the store on every request, so revocation takes effect
// on the next lookup with no cache window.
func ApiKeyAuthMiddleware(apiKeyUsecase *usecases.ApiKeyUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, err := apiKeyUsecase.Authenticate(c.Request.Context(), extractApiKey(c))
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		c.Set(AuthResultKey, auth)
		c.Next()
	}
}

// extractApiKey prefers the dedicated header over the Authorization header.
func extractApiKey(c *gin.Context) string {
	if key := c.GetHeader(ApiKeyHeader); key != "" {
		return key
	}

	authHeader := c.GetHeader(AuthorizationHeader)
	if strings.HasPrefix(authHeader, BearerPrefix) {
		return strings.TrimPrefix(authHeader, BearerPrefix)
	}
	return ""
}

// GetAuthResult gets the authentication result from context
func GetAuthResult(c *gin.Context) (*entities.AuthResult, bool) {
	value, exists := c.Get(AuthResultKey)
	if !exists {
		return nil, false
	}
	auth, ok := value.(*entities.AuthResult)
	return auth, ok
}
