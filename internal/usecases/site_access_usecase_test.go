package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
)

func newAuthResult(orgID uuid.UUID, scope entities.SiteScope) *entities.AuthResult {
	return &entities.AuthResult{
		KeyID:          uuid.New(),
		OrganizationID: orgID,
		Scope:          scope,
		Permissions:    entities.NewPermissionSet([]string{"read:content"}),
	}
}

func newSite(orgID uuid.UUID) *entities.Site {
	return &entities.Site{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           "Docs",
		Slug:           "docs",
		Status:         entities.SiteStatusPublished,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func TestValidateSiteAccess_UnrestrictedKey(t *testing.T) {
	repo := new(MockSiteRepository)
	usecase := NewSiteAccessUsecase(repo)

	orgID := uuid.New()
	site := newSite(orgID)
	repo.On("GetByID", mock.Anything, site.ID).Return(site, nil)

	got, err := usecase.ValidateSiteAccess(context.Background(), newAuthResult(orgID, entities.UnrestrictedScope()), site.ID)
	require.NoError(t, err)
	assert.Equal(t, site.ID, got.ID)
}

func TestValidateSiteAccess_SiteInAllowList(t *testing.T) {
	repo := new(MockSiteRepository)
	usecase := NewSiteAccessUsecase(repo)

	orgID := uuid.New()
	site := newSite(orgID)
	repo.On("GetByID", mock.Anything, site.ID).Return(site, nil)

	scope := entities.RestrictedScope([]uuid.UUID{site.ID, uuid.New()})
	_, err := usecase.ValidateSiteAccess(context.Background(), newAuthResult(orgID, scope), site.ID)
	require.NoError(t, err)
}

func TestValidateSiteAccess_SiteOutsideAllowList(t *testing.T) {
	repo := new(MockSiteRepository)
	usecase := NewSiteAccessUsecase(repo)

	orgID := uuid.New()
	site := newSite(orgID)
	repo.On("GetByID", mock.Anything, site.ID).Return(site, nil)

	scope := entities.RestrictedScope([]uuid.UUID{uuid.New()})
	_, err := usecase.ValidateSiteAccess(context.Background(), newAuthResult(orgID, scope), site.ID)

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeForbidden, appErr.Code)
}

func TestValidateSiteAccess_CrossOrganizationReadsAsForbidden(t *testing.T) {
	repo := new(MockSiteRepository)
	usecase := NewSiteAccessUsecase(repo)

	site := newSite(uuid.New())
	repo.On("GetByID", mock.Anything, site.ID).Return(site, nil)

	auth := newAuthResult(uuid.New(), entities.UnrestrictedScope())
	_, err := usecase.ValidateSiteAccess(context.Background(), auth, site.ID)

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeForbidden, appErr.Code)
	assert.Equal(t, "forbidden", appErr.Message)
}

func TestValidateSiteAccess_MissingSiteReadsAsForbidden(t *testing.T) {
	repo := new(MockSiteRepository)
	usecase := NewSiteAccessUsecase(repo)

	missingID := uuid.New()
	repo.On("GetByID", mock.Anything, missingID).Return(nil, domainerrors.ErrNotFound)

	auth := newAuthResult(uuid.New(), entities.UnrestrictedScope())
	_, err := usecase.ValidateSiteAccess(context.Background(), auth, missingID)

	// Indistinguishable from the cross-organization case above, so callers
	// cannot probe which site IDs exist.
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeForbidden, appErr.Code)
	assert.Equal(t, "forbidden", appErr.Message)
}

func TestValidateSiteAccess_StoreFailureIsInternal(t *testing.T) {
	repo := new(MockSiteRepository)
	usecase := NewSiteAccessUsecase(repo)

	siteID := uuid.New()
	repo.On("GetByID", mock.Anything, siteID).Return(nil, assert.AnError)

	auth := newAuthResult(uuid.New(), entities.UnrestrictedScope())
	_, err := usecase.ValidateSiteAccess(context.Background(), auth, siteID)

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeInternalError, appErr.Code)
}

func TestValidateSiteAccess_NilAuth(t *testing.T) {
	repo := new(MockSiteRepository)
	usecase := NewSiteAccessUsecase(repo)

	_, err := usecase.ValidateSiteAccess(context.Background(), nil, uuid.New())

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeUnauthorized, appErr.Code)
	repo.AssertNotCalled(t, "GetByID")
}
