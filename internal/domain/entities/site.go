package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// SiteStatus represents the lifecycle state of a site
type SiteStatus string

const (
	SiteStatusDraft     SiteStatus = "DRAFT"
	SiteStatusPublished SiteStatus = "PUBLISHED"
	SiteStatusArchived  SiteStatus = "ARCHIVED"
)

// Site is a tenant-owned website project, the unit of access-control scoping.
type Site struct {
	ID             uuid.UUID   `json:"id"`
	OrganizationID uuid.UUID   `json:"organizationId"`
	Name           string      `json:"name"`
	Slug           string      `json:"slug"`
	Domain         null.String `json:"domain,omitempty"`
	WordpressURL   null.String `json:"wordpressUrl,omitempty"`
	Status         SiteStatus  `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

type CreateSiteInput struct {
	Name         string `json:"name" binding:"required"`
	Slug         string `json:"slug" binding:"required"`
	Domain       string `json:"domain"`
	WordpressURL string `json:"wordpressUrl"`
}

type UpdateSiteInput struct {
	Name         string `json:"name"`
	Domain       string `json:"domain"`
	WordpressURL string `json:"wordpressUrl"`
	Status       string `json:"status"`
}
