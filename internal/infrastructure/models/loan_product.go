package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LoanProduct struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Code               string          `gorm:"type:varchar(20);uniqueIndex;not null"`
	Name               string          `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description        *string         `gorm:"type:varchar(500)"`
	LoanType           string          `gorm:"type:varchar(20);not null;index"`
	MinAmount          decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	MaxAmount          decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	InterestRate       decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	PenaltyRate        decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	MinTenureMonths    int             `gorm:"not null;default:1"`
	MaxTenureMonths    int             `gorm:"not null"`
	RepaymentFrequency string          `gorm:"type:varchar(10);not null;default:'monthly'"`
	ProcessingFeeRate  decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	InsuranceFeeRate   decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	RequiresCollateral bool            `gorm:"not null;default:false"`
	// No default tag here: with one, a false value is dropped from the
	// insert and the column default silently reactivates the product.
	Active    bool `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
