package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Entry struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SiteID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ContentTypeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Slug          string    `gorm:"type:varchar(255);not null"`
	Data          string    `gorm:"type:text;not null;default:'{}'"` // JSON payload
	Status        string    `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
	Site          Site           `gorm:"foreignKey:SiteID"`
	ContentType   ContentType    `gorm:"foreignKey:ContentTypeID"`
}
