package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	DocumentType    string     `gorm:"type:varchar(50);not null"`
	FileName        string     `gorm:"type:varchar(255);not null"`
	FilePath        string     `gorm:"type:varchar(500);not null"`
	FileSize        int64      `gorm:"not null"`
	ContentType     string     `gorm:"type:varchar(100);not null"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason *string    `gorm:"type:varchar(500)"`
	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`

	Customer Customer `gorm:"foreignKey:CustomerID"`
}
