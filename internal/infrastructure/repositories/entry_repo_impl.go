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

// EntryRepository implements content entry data operations
type EntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create creates a new entry
func (r *EntryRepository) Create(ctx context.Context, entry *entities.Entry) error {
	m := r.toModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets an entry by ID
func (r *EntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Entry, error) {
	var m models.Entry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListBySiteID lists entries of a site, optionally filtered by content type,
// with a total count for pagination.
func (r *EntryRepository) ListBySiteID(ctx context.Context, siteID uuid.UUID, contentTypeID *uuid.UUID, limit, offset int) ([]*entities.Entry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Entry{}).Where("site_id = ?", siteID)
	if contentTypeID != nil {
		query = query.Where("content_type_id = ?", *contentTypeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Entry
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*entities.Entry, 0, len(ms))
	for i := range ms {
		entries = append(entries, r.toEntity(&ms[i]))
	}
	return entries, total, nil
}

// Update updates an entry
func (r *EntryRepository) Update(ctx context.Context, entry *entities.Entry) error {
	updates := map[string]interface{}{
		"title":      entry.Title,
		"slug":       entry.Slug,
		"data":       marshalJSONMap(entry.Data),
		"status":     string(entry.Status),
		"updated_at": time.Now(),
	}
	if entry.PublishedAt.Valid {
		updates["published_at"] = entry.PublishedAt.Time
	}

	result := r.db.WithContext(ctx).Model(&models.Entry{}).
		Where("id = ?", entry.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft-deletes an entry
func (r *EntryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Entry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *EntryRepository) toModel(e *entities.Entry) *models.Entry {
	return &models.Entry{
		ID:            e.ID,
		SiteID:        e.SiteID,
		ContentTypeID: e.ContentTypeID,
		Title:         e.Title,
		Slug:          e.Slug,
		Data:          marshalJSONMap(e.Data),
		Status:        string(e.Status),
		PublishedAt:   e.PublishedAt.Ptr(),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (r *EntryRepository) toEntity(m *models.Entry) *entities.Entry {
	return &entities.Entry{
		ID:            m.ID,
		SiteID:        m.SiteID,
		ContentTypeID: m.ContentTypeID,
		Title:         m.Title,
		Slug:          m.Slug,
		Data:          unmarshalJSONMap(m.Data),
		Status:        entities.EntryStatus(m.Status),
		PublishedAt:   null.TimeFromPtr(m.PublishedAt),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
