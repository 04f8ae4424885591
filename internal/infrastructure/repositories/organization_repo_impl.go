package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/infrastructure/models"
)

// OrganizationRepository implements organization data operations
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(ctx context.Context, org *entities.Organization) error {
	m := &models.Organization{
		ID:          org.ID,
		Name:        org.Name,
		Slug:        org.Slug,
		OwnerUserID: org.OwnerUserID,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets an organization by ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Organization, error) {
	var m models.Organization
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetBySlug gets an organization by slug
func (r *OrganizationRepository) GetBySlug(ctx context.Context, slug string) (*entities.Organization, error) {
	var m models.Organization
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByOwnerID lists organizations owned by a dashboard user
func (r *OrganizationRepository) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*entities.Organization, error) {
	var ms []models.Organization
	if err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	orgs := make([]*entities.Organization, 0, len(ms))
	for i := range ms {
		orgs = append(orgs, r.toEntity(&ms[i]))
	}
	return orgs, nil
}

// Update updates an organization
func (r *OrganizationRepository) Update(ctx context.Context, org *entities.Organization) error {
	result := r.db.WithContext(ctx).Model(&models.Organization{}).
		Where("id = ?", org.ID).
		Updates(map[string]interface{}{
			"name":       org.Name,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *OrganizationRepository) toEntity(m *models.Organization) *entities.Organization {
	return &entities.Organization{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		OwnerUserID: m.OwnerUserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
