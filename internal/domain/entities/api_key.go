package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ApiKey represents a bearer credential issued to an organization. Only the
// SHA-256 hash of the raw key is ever persisted.
type ApiKey struct {
	ID             uuid.UUID   `json:"id"`
	OrganizationID uuid.UUID   `json:"organizationId"`
	Name           string      `json:"name"`
	KeyPrefix      string      `json:"keyPrefix"`
	KeyHash        string      `json:"-"`
	KeyMasked      string      `json:"keyMasked"`
	AllowedSiteIDs []uuid.UUID `json:"allowedSiteIds,omitempty"`
	Permissions    []string    `json:"permissions"`
	IsActive       bool        `json:"isActive"`
	LastUsedAt     null.Time   `json:"lastUsedAt,omitempty"`
	ExpiresAt      null.Time   `json:"expiresAt,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// Scope resolves the key's allow-list into a tagged SiteScope.
func (k *ApiKey) Scope() SiteScope {
	return RestrictedScope(k.AllowedSiteIDs)
}

type CreateApiKeyInput struct {
	Name           string      `json:"name" binding:"required"`
	Permissions    []string    `json:"permissions"`
	AllowedSiteIDs []uuid.UUID `json:"allowedSiteIds"`
}

// CreateApiKeyResponse carries the raw key exactly once, at creation time.
type CreateApiKeyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ApiKey      string    `json:"apiKey"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuthResult is the per-request outcome of API-key authentication. It is
// never persisted.
type AuthResult struct {
	KeyID          uuid.UUID
	OrganizationID uuid.UUID
	Scope          SiteScope
	Permissions    PermissionSet
}

// HasPermission reports whether the authenticated key carries the given
// capability.
func (a *AuthResult) HasPermission(p Permission) bool {
	if a == nil {
		return false
	}
	return a.Permissions.Has(p)
}
