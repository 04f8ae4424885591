package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/infrastructure/models"
)

// ContentTypeRepository implements content type data operations
type ContentTypeRepository struct {
	db *gorm.DB
}

// NewContentTypeRepository creates a new content type repository
func NewContentTypeRepository(db *gorm.DB) *ContentTypeRepository {
	return &ContentTypeRepository{db: db}
}

// Create creates a new content type
func (r *ContentTypeRepository) Create(ctx context.Context, contentType *entities.ContentType) error {
	m := &models.ContentType{
		ID:        contentType.ID,
		SiteID:    contentType.SiteID,
		Name:      contentType.Name,
		Slug:      contentType.Slug,
		Fields:    marshalJSONMap(contentType.Fields),
		CreatedAt: contentType.CreatedAt,
		UpdatedAt: contentType.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a content type by ID
func (r *ContentTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ContentType, error) {
	var m models.ContentType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetBySlug gets a content type by site and slug
func (r *ContentTypeRepository) GetBySlug(ctx context.Context, siteID uuid.UUID, slug string) (*entities.ContentType, error) {
	var m models.ContentType
	if err := r.db.WithContext(ctx).
		Where("site_id = ? AND slug = ?", siteID, slug).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListBySiteID lists all content types of a site
func (r *ContentTypeRepository) ListBySiteID(ctx context.Context, siteID uuid.UUID) ([]*entities.ContentType, error) {
	var ms []models.ContentType
	if err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("name ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	types := make([]*entities.ContentType, 0, len(ms))
	for i := range ms {
		types = append(types, r.toEntity(&ms[i]))
	}
	return types, nil
}

func (r *ContentTypeRepository) toEntity(m *models.ContentType) *entities.ContentType {
	return &entities.ContentType{
		ID:        m.ID,
		SiteID:    m.SiteID,
		Name:      m.Name,
		Slug:      m.Slug,
		Fields:    unmarshalJSONMap(m.Fields),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
