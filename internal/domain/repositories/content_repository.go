package repositories

import (
	"context"

	"github.com/google/uuid"
	"site-weaver.backend/internal/domain/entities"
)

type ContentTypeRepository interface {
	Create(ctx context.Context, contentType *entities.ContentType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ContentType, error)
	GetBySlug(ctx context.Context, siteID uuid.UUID, slug string) (*entities.ContentType, error)
	ListBySiteID(ctx context.Context, siteID uuid.UUID) ([]*entities.ContentType, error)
}

type EntryRepository interface {
	Create(ctx context.Context, entry *entities.Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Entry, error)
	ListBySiteID(ctx context.Context, siteID uuid.UUID, contentTypeID *uuid.UUID, limit, offset int) ([]*entities.Entry, int64, error)
	Update(ctx context.Context, entry *entities.Entry) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
