package models

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ActorID      *uuid.UUID `gorm:"type:uuid;index"`
	ActorEmail   *string    `gorm:"type:varchar(255)"`
	Action       string     `gorm:"type:varchar(20);not null;index"`
	ResourceType string     `gorm:"type:varchar(50);not null;index"`
	ResourceID   *string    `gorm:"type:varchar(50);index"`
	Details      *string    `gorm:"type:jsonb;default:'{}'"`
	IPAddress    *string    `gorm:"type:varchar(45)"`
	RequestID    *string    `gorm:"type:varchar(50)"`
	CreatedAt    time.Time  `gorm:"index"`
}
