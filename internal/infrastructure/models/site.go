package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Site struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Slug           string    `gorm:"type:varchar(100);not null;index:idx_sites_org_slug,unique"`
	Domain         *string   `gorm:"type:varchar(255)"`
	WordpressURL   *string   `gorm:"type:varchar(255)"`
	Status         string    `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
	Organization   Organization   `gorm:"foreignKey:OrganizationID"`
}
