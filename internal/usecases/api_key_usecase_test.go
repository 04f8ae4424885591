package usecases

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
)

func newStoredKey(rawKey string, orgID uuid.UUID) *entities.ApiKey {
	return &entities.ApiKey{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           "ci key",
		KeyPrefix:      KeyPrefixLive,
		KeyHash:        sha256Hex([]byte(rawKey)),
		KeyMasked:      "****" + rawKey[len(rawKey)-4:],
		Permissions:    []string{"read:content", "read:site"},
		IsActive:       true,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func TestAuthenticate_Success(t *testing.T) {
	repo := new(MockApiKeyRepository)
	usecase := NewApiKeyUsecase(repo)

	orgID := uuid.New()
	rawKey := KeyPrefixLive + strings.Repeat("ab", 32)
	stored := newStoredKey(rawKey, orgID)

	repo.On("FindByKeyHash", mock.Anything, sha256Hex([]byte(rawKey))).Return(stored, nil)
	repo.On("TouchLastUsed", mock.Anything, stored.ID).Return(nil)

	auth, err := usecase.Authenticate(context.Background(), rawKey)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, auth.KeyID)
	assert.Equal(t, orgID, auth.OrganizationID)
	assert.False(t, auth.Scope.IsRestricted())
	assert.True(t, auth.HasPermission(entities.PermissionReadContent))
	assert.False(t, auth.HasPermission(entities.PermissionWriteContent))
	repo.AssertExpectations(t)
}

func TestAuthenticate_MissingKey(t *testing.T) {
	repo := new(MockApiKeyRepository)
	usecase := NewApiKeyUsecase(repo)

	_, err := usecase.Authenticate(context.Background(), "")

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeUnauthorized, appErr.Code)
	repo.AssertNotCalled(t, "FindByKeyHash")
}

func TestAuthenticate_UnknownKey(t *testing.T) {
	repo := new(MockApiKeyRepository)
	usecase := NewApiKeyUsecase(repo)

	repo.On("FindByKeyHash", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrNotFound)

	_, err := usecase.Authenticate(context.Background(), KeyPrefixLive+"deadbeef")

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeUnauthorized, appErr.Code)
}

func TestAuthenticate_RevokedKey(t *testing.T) {
	repo := new(MockApiKeyRepository)
	usecase := NewApiKeyUsecase(repo)

	rawKey := KeyPrefixLive + strings.Repeat("cd", 32)
	stored := newStoredKey(rawKey, uuid.New())
	stored.IsActive = false

	repo.On("FindByKeyHash", mock.Anything, mock.Anything).Return(stored, nil)

	_, err := usecase.Authenticate(context.Background(), rawKey)

	// A revoked key reads identically to an unknown one.
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeUnauthorized, appErr.Code)
	assert.Equal(t, "invalid or missing API key", appErr.Message)
	repo.AssertNotCalled(t, "TouchLastUsed")
}

func TestAuthenticate_ExpiredKey(t *testing.T) {
	repo := new(MockApiKeyRepository)
	usecase := NewApiKeyUsecase(repo)

	rawKey := KeyPrefixLive + strings.Repeat("ef", 32)
	stored := newStoredKey(rawKey, uuid.New())
	stored.ExpiresAt = null.TimeFrom(time.Now().Add(-time.Hour))

	repo.On("FindByKeyHash", mock.Anything, mock.Anything).Return(stored, nil)

	_, err := usecase.Authenticate(context.Background(), rawKey)

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeUnauthorized, appErr.Code)
}

func TestAuthenticate_RestrictedScope(t *testing.T) {
	repo := new(MockApiKeyRepository)
	usecase := NewApiKeyUsecase(repo)

	allowedSite := uuid.New()
	rawKey := KeyPrefixLive + strings.Repeat("01", 32)
	stored := newStoredKey(rawKey, uuid.New())
	stored.AllowedSiteIDs = []uuid.UUID{allowedSite}

	repo.On("FindByKeyHash", mock.Anything, mock.Anything).Return(stored, nil)
	repo.On("TouchLastUsed", mock.Anything, stored.ID).Return(nil)

	auth, err := usecase.Authenticate(context.Background(), rawKey)
	require.NoError(t, err)
	assert.True(t, auth.Scope.IsRestricted())
	assert.True(t, auth.Scope.Allows(allowedSite))
	assert.False(t, auth.Scope.Allows(uuid.New()))
}

func TestAuthenticate_TouchFailureDoesNotFailAuth(t *testing.T) {
	repo := new(MockApiKeyRepository)
	usecase := NewApiKeyUsecase(repo)

	rawKey := KeyPrefixLive + strings.Repeat("23", 32)
	stored := newStoredKey(rawKey, uuid.New())

	repo.On("FindByKeyHash", mock.Anything, mock.Anything).Return(stored, nil)
	repo.On("TouchLastUsed", mock.Anything, stored.ID).Return(assert.AnError)

	_, err := usecase.Authenticate(context.Background(), rawKey)
	require.NoError(t, err)
}

func TestCreateApiKey_ReturnsRawKeyOnce(t *testing.T) {
	repo := new(MockApiKeyRepository)
	usecase := NewApiKeyUsecase(repo)

	var created *entities.ApiKey
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entities.ApiKey")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entities.ApiKey)
		}).Return(nil)

	resp, err := usecase.CreateApiKey(context.Background(), uuid.New(), &entities.CreateApiKeyInput{
		Name:        "deploy key",
		Permissions: []string{"read:content"},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.ApiKey, KeyPrefixLive))
	assert.Len(t, resp.ApiKey, len(KeyPrefixLive)+keyRandomHexLen)

	// Only the hash is stored; the raw key never reaches the repository.
	require.NotNil(t, created)
	assert.Equal(t, sha256Hex([]byte(resp.ApiKey)), created.KeyHash)
	assert.NotContains(t, created.KeyMasked, resp.ApiKey[len(KeyPrefixLive):len(resp.ApiKey)-4])
}

func TestCreateApiKey_RejectsUnknownPermission(t *testing.T) {
	repo := new(MockApiKeyRepository)
	usecase := NewApiKeyUsecase(repo)

	_, err := usecase.CreateApiKey(context.Background(), uuid.New(), &entities.CreateApiKeyInput{
		Name:        "bad key",
		Permissions: []string{"read:content", "admin:everything"},
	})

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeValidationError, appErr.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestRevokeApiKey_OtherOrganization(t *testing.T) {
	repo := new(MockApiKeyRepository)
	usecase := NewApiKeyUsecase(repo)

	stored := newStoredKey(KeyPrefixLive+strings.Repeat("45", 32), uuid.New())
	repo.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)

	err := usecase.RevokeApiKey(context.Background(), uuid.New(), stored.ID)

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeForbidden, appErr.Code)
	repo.AssertNotCalled(t, "Deactivate")
}

func TestRevokeApiKey_Success(t *testing.T) {
	repo := new(MockApiKeyRepository)
	usecase := NewApiKeyUsecase(repo)

	orgID := uuid.New()
	stored := newStoredKey(KeyPrefixLive+strings.Repeat("67", 32), orgID)
	repo.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)
	repo.On("Deactivate", mock.Anything, stored.ID).Return(nil)

	require.NoError(t, usecase.RevokeApiKey(context.Background(), orgID, stored.ID))
	repo.AssertExpectations(t)
}
