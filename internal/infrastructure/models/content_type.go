package models

import (
	"time"

	"github.com/google/uuid"
)

type ContentType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SiteID    uuid.UUID `gorm:"type:uuid;not null;index:idx_content_types_site_slug,unique"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Slug      string    `gorm:"type:varchar(100);not null;index:idx_content_types_site_slug,unique"`
	Fields    string    `gorm:"type:text;not null;default:'{}'"` // JSON schema blob
	CreatedAt time.Time
	UpdatedAt time.Time
	Site      Site `gorm:"foreignKey:SiteID"`
}
