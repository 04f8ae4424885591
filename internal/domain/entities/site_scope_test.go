package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSiteScope_EmptyListIsUnrestricted(t *testing.T) {
	scope := RestrictedScope(nil)
	assert.False(t, scope.IsRestricted())
	assert.True(t, scope.Allows(uuid.New()))

	scope = RestrictedScope([]uuid.UUID{})
	assert.False(t, scope.IsRestricted())
	assert.True(t, scope.Allows(uuid.New()))
	assert.Nil(t, scope.SiteIDs())
}

func TestSiteScope_RestrictedMembership(t *testing.T) {
	allowed := uuid.New()
	other := uuid.New()

	scope := RestrictedScope([]uuid.UUID{allowed})
	assert.True(t, scope.IsRestricted())
	assert.True(t, scope.Allows(allowed))
	assert.False(t, scope.Allows(other))
	assert.Len(t, scope.SiteIDs(), 1)
}

func TestApiKey_Scope(t *testing.T) {
	key := &ApiKey{}
	assert.False(t, key.Scope().IsRestricted())

	siteID := uuid.New()
	key.AllowedSiteIDs = []uuid.UUID{siteID}
	assert.True(t, key.Scope().Allows(siteID))
	assert.False(t, key.Scope().Allows(uuid.New()))
}

func TestPermissionSet_FailClosed(t *testing.T) {
	var nilSet PermissionSet
	assert.False(t, nilSet.Has(PermissionReadContent))

	empty := NewPermissionSet(nil)
	assert.False(t, empty.Has(PermissionReadContent))
}

func TestPermissionSet_DropsUnknownNames(t *testing.T) {
	set := NewPermissionSet([]string{"read:content", "write:contnet", "admin:everything"})
	assert.True(t, set.Has(PermissionReadContent))
	assert.False(t, set.Has(PermissionWriteContent))
	assert.Len(t, set, 1)
}

func TestAuthResult_HasPermission(t *testing.T) {
	var nilResult *AuthResult
	assert.False(t, nilResult.HasPermission(PermissionReadContent))

	auth := &AuthResult{Permissions: NewPermissionSet([]string{"write:content"})}
	assert.True(t, auth.HasPermission(PermissionWriteContent))
	assert.False(t, auth.HasPermission(PermissionManageSite))
}
