package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/domain/repositories"
	"site-weaver.backend/pkg/utils"
)

// OrganizationUsecase manages tenant organizations.
type OrganizationUsecase struct {
	orgRepo repositories.OrganizationRepository
}

// NewOrganizationUsecase creates a new organization usecase
func NewOrganizationUsecase(orgRepo repositories.OrganizationRepository) *OrganizationUsecase {
	return &OrganizationUsecase{orgRepo: orgRepo}
}

// CreateOrganization creates a new tenant owned by the given user.
func (u *OrganizationUsecase) CreateOrganization(ctx context.Context, ownerID uuid.UUID, input *entities.CreateOrganizationInput) (*entities.Organization, error) {
	if _, err := u.orgRepo.GetBySlug(ctx, input.Slug); err == nil {
		return nil, domainerrors.Conflict("organization slug is already taken")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}

	now := time.Now()
	org := &entities.Organization{
		ID:          utils.GenerateUUIDv7(),
		Name:        input.Name,
		Slug:        input.Slug,
		OwnerUserID: ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.orgRepo.Create(ctx, org); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return org, nil
}

// GetOrganization fetches a tenant the user owns.
func (u *OrganizationUsecase) GetOrganization(ctx context.Context, ownerID, orgID uuid.UUID) (*entities.Organization, error) {
	org, err := u.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("organization not found")
		}
		return nil, domainerrors.InternalError(err)
	}
	if org.OwnerUserID != ownerID {
		return nil, domainerrors.Forbidden("not a member of this organization")
	}
	return org, nil
}

// ListOrganizations lists the tenants owned by the user.
func (u *OrganizationUsecase) ListOrganizations(ctx context.Context, ownerID uuid.UUID) ([]*entities.Organization, error) {
	orgs, err := u.orgRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return orgs, nil
}
