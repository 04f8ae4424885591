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

// WebhookRepository implements webhook data operations
type WebhookRepository struct {
	db *gorm.DB
}

// NewWebhookRepository creates a new webhook repository
func NewWebhookRepository(db *gorm.DB) *WebhookRepository {
	return &WebhookRepository{db: db}
}

// Create creates a new webhook
func (r *WebhookRepository) Create(ctx context.Context, webhook *entities.Webhook) error {
	m := r.toModel(webhook)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a webhook by ID
func (r *WebhookRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Webhook, error) {
	var m models.Webhook
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListBySiteID lists all webhooks of a site
func (r *WebhookRepository) ListBySiteID(ctx context.Context, siteID uuid.UUID) ([]*entities.Webhook, error) {
	var ms []models.Webhook
	if err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// ListActiveByEvent lists active webhooks of a site subscribed to an event.
// Event membership is filtered in memory since events are a JSON text column.
func (r *WebhookRepository) ListActiveByEvent(ctx context.Context, siteID uuid.UUID, event string) ([]*entities.Webhook, error) {
	var ms []models.Webhook
	if err := r.db.WithContext(ctx).
		Where("site_id = ? AND is_active = ?", siteID, true).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var matched []*entities.Webhook
	for i := range ms {
		e := r.toEntity(&ms[i])
		for _, ev := range e.Events {
			if ev == event {
				matched = append(matched, e)
				break
			}
		}
	}
	return matched, nil
}

// Update updates a webhook
func (r *WebhookRepository) Update(ctx context.Context, webhook *entities.Webhook) error {
	updates := map[string]interface{}{
		"url":        webhook.URL,
		"events":     marshalStringList(webhook.Events),
		"is_active":  webhook.IsActive,
		"updated_at": time.Now(),
	}
	if webhook.LastFired.Valid {
		updates["last_fired"] = webhook.LastFired.Time
	}

	result := r.db.WithContext(ctx).Model(&models.Webhook{}).
		Where("id = ?", webhook.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a webhook
func (r *WebhookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Webhook{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *WebhookRepository) toModel(e *entities.Webhook) *models.Webhook {
	return &models.Webhook{
		ID:        e.ID,
		SiteID:    e.SiteID,
		URL:       e.URL,
		Secret:    e.Secret,
		Events:    marshalStringList(e.Events),
		IsActive:  e.IsActive,
		LastFired: e.LastFired.Ptr(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (r *WebhookRepository) toEntity(m *models.Webhook) *entities.Webhook {
	return &entities.Webhook{
		ID:        m.ID,
		SiteID:    m.SiteID,
		URL:       m.URL,
		Secret:    m.Secret,
		Events:    unmarshalStringList(m.Events),
		IsActive:  m.IsActive,
		LastFired: null.TimeFromPtr(m.LastFired),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *WebhookRepository) toEntities(ms []models.Webhook) []*entities.Webhook {
	webhooks := make([]*entities.Webhook, 0, len(ms))
	for i := range ms {
		webhooks = append(webhooks, r.toEntity(&ms[i]))
	}
	return webhooks
}
