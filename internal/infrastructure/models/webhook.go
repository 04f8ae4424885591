package models

import (
	"time"

	"github.com/google/uuid"
)

type Webhook struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SiteID    uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:varchar(500);not null"`
	Secret    string    `gorm:"type:varchar(128);not null"`
	Events    string    `gorm:"type:text;not null;default:'[]'"` // JSON array of event names
	IsActive  bool      `gorm:"default:true;not null"`
	LastFired *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	Site      Site `gorm:"foreignKey:SiteID"`
}
