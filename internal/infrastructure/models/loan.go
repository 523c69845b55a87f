package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Loan struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	LoanNumber           string           `gorm:"type:varchar(20);uniqueIndex;not null"`
	CustomerID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductID            uuid.UUID        `gorm:"type:uuid;not null;index"`
	Amount               decimal.Decimal  `gorm:"type:numeric(18,2);not null"`
	InterestRate         decimal.Decimal  `gorm:"type:numeric(5,2);not null"`
	TenureMonths         int              `gorm:"not null"`
	RepaymentFrequency   string           `gorm:"type:varchar(10);not null"`
	Purpose              string           `gorm:"type:varchar(500);not null"`
	CollateralType       *string          `gorm:"type:varchar(100)"`
	CollateralValue      *decimal.Decimal `gorm:"type:numeric(18,2)"`
	Status               string           `gorm:"type:varchar(20);not null;index"`
	RejectionReason      *string          `gorm:"type:varchar(500)"`
	InstallmentAmount    decimal.Decimal  `gorm:"type:numeric(18,2);not null;default:0"`
	TotalRepayment       decimal.Decimal  `gorm:"type:numeric(18,2);not null;default:0"`
	ProcessingFee        decimal.Decimal  `gorm:"type:numeric(18,2);not null;default:0"`
	InsuranceFee         decimal.Decimal  `gorm:"type:numeric(18,2);not null;default:0"`
	OutstandingPrincipal decimal.Decimal  `gorm:"type:numeric(18,2);not null;default:0"`
	AccruedInterest      decimal.Decimal  `gorm:"type:numeric(18,2);not null;default:0"`
	PenaltyBalance       decimal.Decimal  `gorm:"type:numeric(18,2);not null;default:0"`
	TotalPaid            decimal.Decimal  `gorm:"type:numeric(18,2);not null;default:0"`
	DaysOverdue          int              `gorm:"not null;default:0"`
	NextDueDate          *time.Time       `gorm:"index"`
	AppliedAt            time.Time        `gorm:"not null"`
	ReviewedBy           *uuid.UUID       `gorm:"type:uuid"`
	ApprovedAt           *time.Time
	DisbursedAt          *time.Time
	ClosedAt             *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`

	Customer Customer    `gorm:"foreignKey:CustomerID"`
	Product  LoanProduct `gorm:"foreignKey:ProductID"`
}

type LoanScheduleEntry struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	LoanID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Number           int             `gorm:"not null"`
	DueDate          time.Time       `gorm:"not null;index"`
	Amount           decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	PrincipalPortion decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	InterestPortion  decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	RemainingBalance decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Paid             bool            `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Loan Loan `gorm:"foreignKey:LoanID"`
}

func (LoanScheduleEntry) TableName() string {
	return "loan_schedule_entries"
}
