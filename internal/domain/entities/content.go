package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ContentType describes the schema of entries a site can hold
// (e.g. "post", "product").
type ContentType struct {
	ID        uuid.UUID              `json:"id"`
	SiteID    uuid.UUID              `json:"siteId"`
	Name      string                 `json:"name"`
	Slug      string                 `json:"slug"`
	Fields    map[string]interface{} `json:"fields"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

type CreateContentTypeInput struct {
	Name   string                 `json:"name" binding:"required"`
	Slug   string                 `json:"slug" binding:"required"`
	Fields map[string]interface{} `json:"fields"`
}

// EntryStatus represents the publication state of an entry
type EntryStatus string

const (
	EntryStatusDraft     EntryStatus = "DRAFT"
	EntryStatusPublished EntryStatus = "PUBLISHED"
)

// Entry is a single piece of content belonging to a site and content type.
type Entry struct {
	ID            uuid.UUID              `json:"id"`
	SiteID        uuid.UUID              `json:"siteId"`
	ContentTypeID uuid.UUID              `json:"contentTypeId"`
	Title         string                 `json:"title"`
	Slug          string                 `json:"slug"`
	Data          map[string]interface{} `json:"data"`
	Status        EntryStatus            `json:"status"`
	PublishedAt   null.Time              `json:"publishedAt,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

type CreateEntryInput struct {
	ContentTypeID uuid.UUID              `json:"contentTypeId" binding:"required"`
	Title         string                 `json:"title" binding:"required"`
	Slug          string                 `json:"slug" binding:"required"`
	Data          map[string]interface{} `json:"data"`
	Publish       bool                   `json:"publish"`
}

type UpdateEntryInput struct {
	Title  string                 `json:"title"`
	Slug   string                 `json:"slug"`
	Data   map[string]interface{} `json:"data"`
	Status string                 `json:"status"`
}
