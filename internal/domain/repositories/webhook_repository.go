package repositories

import (
	"context"

	"github.com/google/uuid"
	"site-weaver.backend/internal/domain/entities"
)

type WebhookRepository interface {
	Create(ctx context.Context, webhook *entities.Webhook) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Webhook, error)
	ListBySiteID(ctx context.Context, siteID uuid.UUID) ([]*entities.Webhook, error)
	ListActiveByEvent(ctx context.Context, siteID uuid.UUID, event string) ([]*entities.Webhook, error)
	Update(ctx context.Context, webhook *entities.Webhook) error
	Delete(ctx context.Context, id uuid.UUID) error
}
