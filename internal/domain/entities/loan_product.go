package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// LoanType enumerates the product families on offer
type LoanType string

const (
	LoanTypePersonal    LoanType = "personal"
	LoanTypeBusiness    LoanType = "business"
	LoanTypeEmergency   LoanType = "emergency"
	LoanTypeAgriculture LoanType = "agriculture"
	LoanTypeEducation   LoanType = "education"
)

// RepaymentFrequency controls the installment cadence of a product
type RepaymentFrequency string

const (
	RepaymentDaily    RepaymentFrequency = "daily"
	RepaymentWeekly   RepaymentFrequency = "weekly"
	RepaymentBiweekly RepaymentFrequency = "biweekly"
	RepaymentMonthly  RepaymentFrequency = "monthly"
)

// LoanProduct represents a configurable loan product entity
type LoanProduct struct {
	ID                 uuid.UUID          `json:"id"`
	Code               string             `json:"code"`
	Name               string             `json:"name"`
	Description        null.String        `json:"description,omitempty"`
	LoanType           LoanType           `json:"loanType"`
	MinAmount          decimal.Decimal    `json:"minAmount"`
	MaxAmount          decimal.Decimal    `json:"maxAmount"`
	InterestRate       decimal.Decimal    `json:"interestRate"`
	PenaltyRate        decimal.Decimal    `json:"penaltyRate"`
	MinTenureMonths    int                `json:"minTenureMonths"`
	MaxTenureMonths    int                `json:"maxTenureMonths"`
	RepaymentFrequency RepaymentFrequency `json:"repaymentFrequency"`
	ProcessingFeeRate  decimal.Decimal    `json:"processingFeeRate"`
	InsuranceFeeRate   decimal.Decimal    `json:"insuranceFeeRate"`
	RequiresCollateral bool               `json:"requiresCollateral"`
	Active             bool               `json:"active"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	DeletedAt          *time.Time         `json:"-"`
}

// CreateLoanProductInput represents input for creating a loan product
type CreateLoanProductInput struct {
	Code               string             `json:"code" binding:"required,min=2,max=20"`
	Name               string             `json:"name" binding:"required,min=3,max=100"`
	Description        string             `json:"description,omitempty"`
	LoanType           LoanType           `json:"loanType" binding:"required"`
	MinAmount          decimal.Decimal    `json:"minAmount" binding:"required"`
	MaxAmount          decimal.Decimal    `json:"maxAmount" binding:"required"`
	InterestRate       decimal.Decimal    `json:"interestRate" binding:"required"`
	PenaltyRate        decimal.Decimal    `json:"penaltyRate"`
	MinTenureMonths    int                `json:"minTenureMonths" binding:"required,gte=1"`
	MaxTenureMonths    int                `json:"maxTenureMonths" binding:"required,lte=60"`
	RepaymentFrequency RepaymentFrequency `json:"repaymentFrequency" binding:"required"`
	ProcessingFeeRate  decimal.Decimal    `json:"processingFeeRate"`
	InsuranceFeeRate   decimal.Decimal    `json:"insuranceFeeRate"`
	RequiresCollateral bool               `json:"requiresCollateral"`
}

// UpdateLoanProductInput represents partial updates to a product
type UpdateLoanProductInput struct {
	Name               *string          `json:"name,omitempty" binding:"omitempty,min=3,max=100"`
	Description        *string          `json:"description,omitempty"`
	MinAmount          *decimal.Decimal `json:"minAmount,omitempty"`
	MaxAmount          *decimal.Decimal `json:"maxAmount,omitempty"`
	InterestRate       *decimal.Decimal `json:"interestRate,omitempty"`
	PenaltyRate        *decimal.Decimal `json:"penaltyRate,omitempty"`
	MinTenureMonths    *int             `json:"minTenureMonths,omitempty" binding:"omitempty,gte=1"`
	MaxTenureMonths    *int             `json:"maxTenureMonths,omitempty" binding:"omitempty,lte=60"`
	ProcessingFeeRate  *decimal.Decimal `json:"processingFeeRate,omitempty"`
	InsuranceFeeRate   *decimal.Decimal `json:"insuranceFeeRate,omitempty"`
	RequiresCollateral *bool            `json:"requiresCollateral,omitempty"`
	Active             *bool            `json:"active,omitempty"`
}
