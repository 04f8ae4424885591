package usecases

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/domain/repositories"
	"site-weaver.backend/pkg/utils"
)

const (
	// KeyPrefixLive prefixes production API keys
	KeyPrefixLive = "sw_live_"
	// KeyPrefixTest prefixes sandbox API keys
	KeyPrefixTest = "sw_test_"
	// keyRandomHexLen is the number of hex chars of entropy in a raw key
	keyRandomHexLen = 64
)

var apiKeyRandRead = rand.Read

// ApiKeyUsecase authenticates and manages organization API keys.
type ApiKeyUsecase struct {
	apiKeyRepo repositories.ApiKeyRepository
}

// NewApiKeyUsecase creates a new API key usecase
func NewApiKeyUsecase(apiKeyRepo repositories.ApiKeyRepository) *ApiKeyUsecase {
	return &ApiKeyUsecase{apiKeyRepo: apiKeyRepo}
}

// CreateApiKey mints a new key for an organization. The raw key is returned
// exactly once; only its SHA-256 hash is stored.
func (u *ApiKeyUsecase) CreateApiKey(ctx context.Context, orgID uuid.UUID, input *entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error) {
	for _, name := range input.Permissions {
		if !entities.IsValidPermission(name) {
			return nil, domainerrors.ValidationError("unknown permission: " + name)
		}
	}

	raw, err := generateRandomHex(keyRandomHexLen)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	rawKey := KeyPrefixLive + raw

	now := time.Now()
	entity := &entities.ApiKey{
		ID:             utils.GenerateUUIDv7(),
		OrganizationID: orgID,
		Name:           input.Name,
		KeyPrefix:      KeyPrefixLive,
		KeyHash:        sha256Hex([]byte(rawKey)),
		KeyMasked:      "****" + rawKey[len(rawKey)-4:],
		AllowedSiteIDs: input.AllowedSiteIDs,
		Permissions:    input.Permissions,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := u.apiKeyRepo.Create(ctx, entity); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	return &entities.CreateApiKeyResponse{
		ID:          entity.ID,
		Name:        entity.Name,
		ApiKey:      rawKey, // Shown once
		Permissions: entity.Permissions,
		CreatedAt:   entity.CreatedAt,
	}, nil
}

// Authenticate resolves the presented raw key to an organization and scope.
// Every failure mode is terminal for the request; callers must not retry
// with the same credential.
func (u *ApiKeyUsecase) Authenticate(ctx context.Context, rawKey string) (*entities.AuthResult, error) {
	if rawKey == "" {
		return nil, domainerrors.Unauthorized("missing API key")
	}

	keyHash := sha256Hex([]byte(rawKey))
	key, err := u.apiKeyRepo.FindByKeyHash(ctx, keyHash)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid or missing API key")
		}
		return nil, domainerrors.InternalError(err)
	}

	// The lookup is keyed by hash already; the explicit constant-time
	// comparison guards against a store that matches hashes loosely
	// (collations, trailing whitespace).
	if !hmac.Equal([]byte(key.KeyHash), []byte(keyHash)) {
		return nil, domainerrors.Unauthorized("invalid or missing API key")
	}

	if !key.IsActive {
		return nil, domainerrors.Unauthorized("invalid or missing API key")
	}
	if key.ExpiresAt.Valid && key.ExpiresAt.Time.Before(time.Now()) {
		return nil, domainerrors.Unauthorized("invalid or missing API key")
	}

	// Fire-and-forget bookkeeping; a failed touch must not fail the request.
	_ = u.apiKeyRepo.TouchLastUsed(ctx, key.ID)

	return &entities.AuthResult{
		KeyID:          key.ID,
		OrganizationID: key.OrganizationID,
		Scope:          key.Scope(),
		Permissions:    entities.NewPermissionSet(key.Permissions),
	}, nil
}

// ListApiKeys lists an organization's keys with hashes withheld.
func (u *ApiKeyUsecase) ListApiKeys(ctx context.Context, orgID uuid.UUID) ([]*entities.ApiKey, error) {
	keys, err := u.apiKeyRepo.FindByOrganizationID(ctx, orgID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return keys, nil
}

// RevokeApiKey deactivates a key. Subsequent authentications with the key's
// secret fail on the next lookup.
func (u *ApiKeyUsecase) RevokeApiKey(ctx context.Context, orgID uuid.UUID, id uuid.UUID) error {
	key, err := u.apiKeyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("API key not found")
		}
		return domainerrors.InternalError(err)
	}
	if key.OrganizationID != orgID {
		return domainerrors.Forbidden("not owner of API key")
	}

	if err := u.apiKeyRepo.Deactivate(ctx, id); err != nil {
		return domainerrors.InternalError(err)
	}
	return nil
}

// Helpers

func generateRandomHex(n int) (string, error) {
	bytes := make([]byte, n/2)
	if _, err := apiKeyRandRead(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func sha256Hex(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
