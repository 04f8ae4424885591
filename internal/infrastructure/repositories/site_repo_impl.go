package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/infrastructure/models"
)

// SiteRepository implements site data operations
type SiteRepository struct {
	db *gorm.DB
}

// NewSiteRepository creates a new site repository
func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

// Create creates a new site
func (r *SiteRepository) Create(ctx context.Context, site *entities.Site) error {
	m := r.toModel(site)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a site by ID
func (r *SiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Site, error) {
	var m models.Site
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByOrganizationID lists sites of an organization with a total count
func (r *SiteRepository) ListByOrganizationID(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*entities.Site, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Site{}).
		Where("organization_id = ?", orgID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Site
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	sites := make([]*entities.Site, 0, len(ms))
	for i := range ms {
		sites = append(sites, r.toEntity(&ms[i]))
	}
	return sites, total, nil
}

// Update updates a site
func (r *SiteRepository) Update(ctx context.Context, site *entities.Site) error {
	updates := map[string]interface{}{
		"name":       site.Name,
		"status":     string(site.Status),
		"updated_at": time.Now(),
	}
	if site.Domain.Valid {
		updates["domain"] = site.Domain.String
	}
	if site.WordpressURL.Valid {
		updates["wordpress_url"] = site.WordpressURL.String
	}

	result := r.db.WithContext(ctx).Model(&models.Site{}).
		Where("id = ?", site.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft-deletes a site
func (r *SiteRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Site{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *SiteRepository) toModel(e *entities.Site) *models.Site {
	return &models.Site{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		Name:           e.Name,
		Slug:           e.Slug,
		Domain:         e.Domain.Ptr(),
		WordpressURL:   e.WordpressURL.Ptr(),
		Status:         string(e.Status),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (r *SiteRepository) toEntity(m *models.Site) *entities.Site {
	return &entities.Site{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Slug:           m.Slug,
		Domain:         null.StringFromPtr(m.Domain),
		WordpressURL:   null.StringFromPtr(m.WordpressURL),
		Status:         entities.SiteStatus(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
