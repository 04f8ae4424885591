package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/domain/repositories"
)

// SiteAccessUsecase decides whether an authenticated API key may act on a
// given site.
type SiteAccessUsecase struct {
	siteRepo repositories.SiteRepository
}

// NewSiteAccessUsecase creates a new site access usecase
func NewSiteAccessUsecase(siteRepo repositories.SiteRepository) *SiteAccessUsecase {
	return &SiteAccessUsecase{siteRepo: siteRepo}
}

// ValidateSiteAccess checks that the site exists, belongs to the key's
// organization, and is within the key's allow-list. A nonexistent site and a
// site owned by another organization both return the same forbidden error, so
// a caller cannot probe which site IDs exist.
func (u *SiteAccessUsecase) ValidateSiteAccess(ctx context.Context, auth *entities.AuthResult, siteID uuid.UUID) (*entities.Site, error) {
	if auth == nil {
		return nil, domainerrors.Unauthorized("missing API key")
	}

	site, err := u.siteRepo.GetByID(ctx, siteID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Forbidden("forbidden")
		}
		return nil, domainerrors.InternalError(err)
	}

	if site.OrganizationID != auth.OrganizationID {
		return nil, domainerrors.Forbidden("forbidden")
	}

	if !auth.Scope.Allows(siteID) {
		return nil, domainerrors.Forbidden("forbidden")
	}

	return site, nil
}
