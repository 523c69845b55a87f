package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Reference     string          `gorm:"type:varchar(40);uniqueIndex;not null"`
	LoanID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          string          `gorm:"type:varchar(20);not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'TZS'"`
	Channel       string          `gorm:"type:varchar(20);not null;index"`
	ChannelRef    *string         `gorm:"type:varchar(100)"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	Narration     *string         `gorm:"type:varchar(500)"`
	PrincipalPaid decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	InterestPaid  decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	PenaltyPaid   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	FeesPaid      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	RecordedBy    *uuid.UUID      `gorm:"type:uuid"`
	ReversedBy    *uuid.UUID      `gorm:"type:uuid"`
	ReversalOf    *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Loan Loan `gorm:"foreignKey:LoanID"`
}
