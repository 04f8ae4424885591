package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/infrastructure/models"
)

// ApiKeyRepository implements API key data operations
type ApiKeyRepository struct {
	db *gorm.DB
}

// NewApiKeyRepository creates a new API key repository
func NewApiKeyRepository(db *gorm.DB) *ApiKeyRepository {
	return &ApiKeyRepository{db: db}
}

// Create creates a new API key record
func (r *ApiKeyRepository) Create(ctx context.Context, apiKey *entities.ApiKey) error {
	m := r.toModel(apiKey)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// FindByKeyHash finds an active-or-not key by its stored hash
func (r *ApiKeyRepository) FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("key_hash = ?", keyHash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// FindByOrganizationID lists all keys issued to an organization
func (r *ApiKeyRepository) FindByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*entities.ApiKey, error) {
	var ms []models.ApiKey
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	keys := make([]*entities.ApiKey, 0, len(ms))
	for i := range ms {
		key, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// FindByID finds a key by id
func (r *ApiKeyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// Deactivate flips the active flag off. Subsequent authentications with this
// key fail on the next lookup.
func (r *ApiKeyRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.ApiKey{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
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

// TouchLastUsed records the time of the latest successful authentication.
// Idempotent single-column update.
func (r *ApiKeyRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.ApiKey{}).
		Where("id = ?", id).
		Update("last_used_at", time.Now()).Error
}

// DeactivateExpired flips off keys whose expiry has passed. Returns the
// number of keys touched. Used by the background expiry sweep.
func (r *ApiKeyRepository) DeactivateExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.ApiKey{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, time.Now()).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// Delete soft-deletes a key
func (r *ApiKeyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ApiKey{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ApiKeyRepository) toModel(e *entities.ApiKey) *models.ApiKey {
	return &models.ApiKey{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		Name:           e.Name,
		KeyPrefix:      e.KeyPrefix,
		KeyHash:        e.KeyHash,
		KeyMasked:      e.KeyMasked,
		AllowedSiteIDs: marshalUUIDList(e.AllowedSiteIDs),
		Permissions:    marshalStringList(e.Permissions),
		IsActive:       e.IsActive,
		LastUsedAt:     e.LastUsedAt.Ptr(),
		ExpiresAt:      e.ExpiresAt.Ptr(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (r *ApiKeyRepository) toEntity(m *models.ApiKey) (*entities.ApiKey, error) {
	allowedSiteIDs, err := unmarshalUUIDList(m.AllowedSiteIDs)
	if err != nil {
		return nil, fmt.Errorf("api key %s has malformed allowed_site_ids: %w", m.ID, err)
	}
	return &entities.ApiKey{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		KeyPrefix:      m.KeyPrefix,
		KeyHash:        m.KeyHash,
		KeyMasked:      m.KeyMasked,
		AllowedSiteIDs: allowedSiteIDs,
		Permissions:    unmarshalStringList(m.Permissions),
		IsActive:       m.IsActive,
		LastUsedAt:     null.TimeFromPtr(m.LastUsedAt),
		ExpiresAt:      null.TimeFromPtr(m.ExpiresAt),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}
