package repositories

import (
	"context"

	"github.com/google/uuid"
	"site-weaver.backend/internal/domain/entities"
)

type ApiKeyRepository interface {
	Create(ctx context.Context, apiKey *entities.ApiKey) error
	FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error)
	FindByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*entities.ApiKey, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	TouchLastUsed(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
