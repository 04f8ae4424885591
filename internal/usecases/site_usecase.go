package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/domain/repositories"
	"site-weaver.backend/pkg/utils"
)

// SiteUsecase manages sites within an organization. All operations take the
// acting organization so ownership is enforced in one place.
type SiteUsecase struct {
	siteRepo repositories.SiteRepository
	orgRepo  repositories.OrganizationRepository
}

// NewSiteUsecase creates a new site usecase
func NewSiteUsecase(siteRepo repositories.SiteRepository, orgRepo repositories.OrganizationRepository) *SiteUsecase {
	return &SiteUsecase{siteRepo: siteRepo, orgRepo: orgRepo}
}

// CreateSite creates a site under an organization.
func (u *SiteUsecase) CreateSite(ctx context.Context, orgID uuid.UUID, input *entities.CreateSiteInput) (*entities.Site, error) {
	if _, err := u.orgRepo.GetByID(ctx, orgID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("organization not found")
		}
		return nil, domainerrors.InternalError(err)
	}

	now := time.Now()
	site := &entities.Site{
		ID:             utils.GenerateUUIDv7(),
		OrganizationID: orgID,
		Name:           input.Name,
		Slug:           input.Slug,
		Status:         entities.SiteStatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if input.Domain != "" {
		site.Domain = null.StringFrom(input.Domain)
	}
	if input.WordpressURL != "" {
		site.WordpressURL = null.StringFrom(input.WordpressURL)
	}

	if err := u.siteRepo.Create(ctx, site); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return site, nil
}

// GetSite fetches a site belonging to the organization.
func (u *SiteUsecase) GetSite(ctx context.Context, orgID, siteID uuid.UUID) (*entities.Site, error) {
	site, err := u.siteRepo.GetByID(ctx, siteID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("site not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if site.OrganizationID != orgID {
		return nil, domainerrors.NotFound("site not found")
	}
	return site, nil
}

// ListSites returns a page of the organization's sites.
func (u *SiteUsecase) ListSites(ctx context.Context, orgID uuid.UUID, params utils.PaginationParams) ([]*entities.Site, utils.PaginationMeta, error) {
	sites, total, err := u.siteRepo.ListByOrganizationID(ctx, orgID, params.PerPage, params.Offset())
	if err != nil {
		return nil, utils.PaginationMeta{}, domainerrors.InternalError(err)
	}
	return sites, utils.CalculatePagination(total, params.Page, params.PerPage), nil
}

// UpdateSite applies a partial update to a site the organization owns.
func (u *SiteUsecase) UpdateSite(ctx context.Context, orgID, siteID uuid.UUID, input *entities.UpdateSiteInput) (*entities.Site, error) {
	site, err := u.GetSite(ctx, orgID, siteID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		site.Name = input.Name
	}
	if input.Domain != "" {
		site.Domain = null.StringFrom(input.Domain)
	}
	if input.WordpressURL != "" {
		site.WordpressURL = null.StringFrom(input.WordpressURL)
	}
	if input.Status != "" {
		switch entities.SiteStatus(input.Status) {
		case entities.SiteStatusDraft, entities.SiteStatusPublished, entities.SiteStatusArchived:
			site.Status = entities.SiteStatus(input.Status)
		default:
			return nil, domainerrors.ValidationError("unknown site status: " + input.Status)
		}
	}
	site.UpdatedAt = time.Now()

	if err := u.siteRepo.Update(ctx, site); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return site, nil
}

// DeleteSite soft-deletes a site the organization owns.
func (u *SiteUsecase) DeleteSite(ctx context.Context, orgID, siteID uuid.UUID) error {
	if _, err := u.GetSite(ctx, orgID, siteID); err != nil {
		return err
	}
	if err := u.siteRepo.SoftDelete(ctx, siteID); err != nil {
		return domainerrors.InternalError(err)
	}
	return nil
}
