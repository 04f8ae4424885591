package repositories

import (
	"context"

	"github.com/google/uuid"
	"site-weaver.backend/internal/domain/entities"
)

type SiteRepository interface {
	Create(ctx context.Context, site *entities.Site) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Site, error)
	ListByOrganizationID(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*entities.Site, int64, error)
	Update(ctx context.Context, site *entities.Site) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
