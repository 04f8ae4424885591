package repositories

import (
	"context"

	"github.com/google/uuid"
	"site-weaver.backend/internal/domain/entities"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *entities.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Organization, error)
	ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entities.Organization, error)
	Update(ctx context.Context, org *entities.Organization) error
}
