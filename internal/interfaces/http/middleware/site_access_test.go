package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/usecases"
)

// stubSiteRepo serves a single site by ID.
type stubSiteRepo struct {
	site *entities.Site
}

func (s *stubSiteRepo) Create(ctx context.Context, site *entities.Site) error { return nil }

func (s *stubSiteRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Site, error) {
	if s.site != nil && s.site.ID == id {
		return s.site, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubSiteRepo) ListByOrganizationID(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*entities.Site, int64, error) {
	return nil, 0, nil
}

func (s *stubSiteRepo) Update(ctx context.Context, site *entities.Site) error { return nil }
func (s *stubSiteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error    { return nil }

func newSiteAccessRouter(t *testing.T, repo *stubSiteRepo, auth *entities.AuthResult) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/sites/:siteId/content",
		func(c *gin.Context) {
			if auth != nil {
				c.Set(AuthResultKey, auth)
			}
		},
		SiteAccessMiddleware(usecases.NewSiteAccessUsecase(repo)),
		func(c *gin.Context) {
			site, ok := GetSite(c)
			require.True(t, ok)
			c.JSON(http.StatusOK, gin.H{"site": site.ID})
		})
	return router
}

func TestSiteAccess_Allowed(t *testing.T) {
	orgID := uuid.New()
	site := &entities.Site{ID: uuid.New(), OrganizationID: orgID}
	auth := &entities.AuthResult{
		KeyID:          uuid.New(),
		OrganizationID: orgID,
		Scope:          entities.UnrestrictedScope(),
	}
	router := newSiteAccessRouter(t, &stubSiteRepo{site: site}, auth)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sites/"+site.ID.String()+"/content", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSiteAccess_OutsideAllowList(t *testing.T) {
	orgID := uuid.New()
	site := &entities.Site{ID: uuid.New(), OrganizationID: orgID}
	auth := &entities.AuthResult{
		KeyID:          uuid.New(),
		OrganizationID: orgID,
		Scope:          entities.RestrictedScope([]uuid.UUID{uuid.New()}),
	}
	router := newSiteAccessRouter(t, &stubSiteRepo{site: site}, auth)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sites/"+site.ID.String()+"/content", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSiteAccess_UnknownSiteIsForbiddenNotNotFound(t *testing.T) {
	auth := &entities.AuthResult{
		KeyID:          uuid.New(),
		OrganizationID: uuid.New(),
		Scope:          entities.UnrestrictedScope(),
	}
	router := newSiteAccessRouter(t, &stubSiteRepo{}, auth)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sites/"+uuid.NewString()+"/content", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSiteAccess_MalformedSiteID(t *testing.T) {
	auth := &entities.AuthResult{
		KeyID:          uuid.New(),
		OrganizationID: uuid.New(),
		Scope:          entities.UnrestrictedScope(),
	}
	router := newSiteAccessRouter(t, &stubSiteRepo{}, auth)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sites/not-a-uuid/content", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSiteAccess_NoAuthResult(t *testing.T) {
	router := newSiteAccessRouter(t, &stubSiteRepo{}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sites/"+uuid.NewString()+"/content", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePermission_Enforced(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := &entities.AuthResult{
		KeyID:       uuid.New(),
		Permissions: entities.NewPermissionSet([]string{"read:content"}),
	}

	router := gin.New()
	router.POST("/entries",
		func(c *gin.Context) { c.Set(AuthResultKey, auth) },
		RequirePermission(entities.PermissionWriteContent),
		func(c *gin.Context) { c.Status(http.StatusCreated) })
	router.GET("/entries",
		func(c *gin.Context) { c.Set(AuthResultKey, auth) },
		RequirePermission(entities.PermissionReadContent),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/entries", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/entries", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermission_FailsClosedWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/entries",
		RequirePermission(entities.PermissionReadContent),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/entries", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
