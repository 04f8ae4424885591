package main

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/interfaces/http/handlers"
	"site-weaver.backend/internal/interfaces/http/middleware"
	"site-weaver.backend/internal/interfaces/http/response"
)

type routeDeps struct {
	healthHandler      *handlers.HealthHandler
	authHandler        *handlers.AuthHandler
	orgHandler         *handlers.OrganizationHandler
	siteHandler        *handlers.SiteHandler
	apiKeyHandler      *handlers.ApiKeyHandler
	contentHandler     *handlers.ContentHandler
	webhookHandler     *handlers.WebhookHandler
	integrationHandler *handlers.IntegrationHandler
	jwtAuth            gin.HandlerFunc
	apiKeyAuth         gin.HandlerFunc
	siteAccess         gin.HandlerFunc
	rateLimit          gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c, allowedMethods(r.Routes(), c.Request.URL.Path))
	})
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, domainerrors.NotFound("route not found"))
	})

	r.GET("/health", d.healthHandler.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		// Dashboard auth (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/logout", d.authHandler.Logout)
			auth.POST("/refresh", d.authHandler.Refresh)
		}

		// Management plane (JWT)
		admin := v1.Group("/admin")
		admin.Use(d.jwtAuth)
		{
			admin.POST("/organizations", d.orgHandler.Create)
			admin.GET("/organizations", d.orgHandler.List)
			admin.GET("/organizations/:orgId", d.orgHandler.Get)

			admin.POST("/organizations/:orgId/sites", d.siteHandler.Create)
			admin.GET("/organizations/:orgId/sites", d.siteHandler.List)
			admin.PATCH("/organizations/:orgId/sites/:siteId", d.siteHandler.Update)
			admin.DELETE("/organizations/:orgId/sites/:siteId", d.siteHandler.Delete)

			admin.POST("/organizations/:orgId/api-keys", d.apiKeyHandler.Create)
			admin.GET("/organizations/:orgId/api-keys", d.apiKeyHandler.List)
			admin.DELETE("/organizations/:orgId/api-keys/:keyId", d.apiKeyHandler.Revoke)
		}

		// External data plane (API key)
		sites := v1.Group("/sites/:siteId")
		sites.Use(d.apiKeyAuth, d.rateLimit, d.siteAccess)
		{
			sites.GET("", middleware.RequirePermission(entities.PermissionReadSite), d.siteHandler.GetForApiKey)

			sites.GET("/content-types", middleware.RequirePermission(entities.PermissionReadContent), d.contentHandler.ListContentTypes)
			sites.POST("/content-types", middleware.RequirePermission(entities.PermissionManageSite), d.contentHandler.CreateContentType)

			sites.GET("/entries", middleware.RequirePermission(entities.PermissionReadContent), d.contentHandler.ListEntries)
			sites.GET("/entries/:entryId", middleware.RequirePermission(entities.PermissionReadContent), d.contentHandler.GetEntry)
			sites.POST("/entries", middleware.RequirePermission(entities.PermissionWriteContent), middleware.IdempotencyMiddleware(), d.contentHandler.CreateEntry)
			sites.PATCH("/entries/:entryId", middleware.RequirePermission(entities.PermissionWriteContent), d.contentHandler.UpdateEntry)
			sites.DELETE("/entries/:entryId", middleware.RequirePermission(entities.PermissionWriteContent), d.contentHandler.DeleteEntry)

			sites.GET("/webhooks", middleware.RequirePermission(entities.PermissionManageWebhooks), d.webhookHandler.List)
			sites.POST("/webhooks", middleware.RequirePermission(entities.PermissionManageWebhooks), d.webhookHandler.Create)
			sites.DELETE("/webhooks/:webhookId", middleware.RequirePermission(entities.PermissionManageWebhooks), d.webhookHandler.Delete)

			sites.POST("/integration/test", middleware.RequirePermission(entities.PermissionManageSite), d.integrationHandler.TestConnection)
		}
	}
}

// allowedMethods collects the methods registered for a concrete request path.
// Route parameters (:id segments) match any value.
func allowedMethods(routes gin.RoutesInfo, path string) []string {
	seen := map[string]struct{}{}
	var methods []string
	for _, route := range routes {
		if pathMatchesRoute(route.Path, path) {
			if _, dup := seen[route.Method]; !dup {
				seen[route.Method] = struct{}{}
				methods = append(methods, route.Method)
			}
		}
	}
	return methods
}

func pathMatchesRoute(routePath, requestPath string) bool {
	routeSegs := strings.Split(strings.Trim(routePath, "/"), "/")
	reqSegs := strings.Split(strings.Trim(requestPath, "/"), "/")
	if len(routeSegs) != len(reqSegs) {
		return false
	}
	for i, seg := range routeSegs {
		if strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			continue
		}
		if seg != reqSegs[i] {
			return false
		}
	}
	return true
}
