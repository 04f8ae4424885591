package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApiKey struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(100);not null"`
	KeyPrefix      string    `gorm:"type:varchar(20);not null"`
	KeyHash        string    `gorm:"type:varchar(64);uniqueIndex;not null"` // SHA256 of raw key
	KeyMasked      string    `gorm:"type:varchar(20);not null"`             // "****abcd"
	AllowedSiteIDs string    `gorm:"type:text;not null;default:'[]'"`       // JSON array of uuids
	Permissions    string    `gorm:"type:text;not null;default:'[]'"`       // JSON array of names
	IsActive       bool      `gorm:"default:true;not null"`
	LastUsedAt     *time.Time
	ExpiresAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
	Organization   Organization   `gorm:"foreignKey:OrganizationID"`
}
