package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// LoanStatus tracks a loan through its lifecycle
type LoanStatus string

const (
	LoanStatusSubmitted   LoanStatus = "submitted"
	LoanStatusUnderReview LoanStatus = "under_review"
	LoanStatusApproved    LoanStatus = "approved"
	LoanStatusRejected    LoanStatus = "rejected"
	LoanStatusDisbursed   LoanStatus = "disbursed"
	LoanStatusActive      LoanStatus = "active"
	LoanStatusCompleted   LoanStatus = "completed"
	LoanStatusDefaulted   LoanStatus = "defaulted"
	LoanStatusWrittenOff  LoanStatus = "written_off"
)

// loanTransitions describes the allowed lifecycle moves
var loanTransitions = map[LoanStatus][]LoanStatus{
	LoanStatusSubmitted:   {LoanStatusUnderReview, LoanStatusRejected},
	LoanStatusUnderReview: {LoanStatusApproved, LoanStatusRejected},
	LoanStatusApproved:    {LoanStatusDisbursed, LoanStatusRejected},
	LoanStatusDisbursed:   {LoanStatusActive},
	LoanStatusActive:      {LoanStatusCompleted, LoanStatusDefaulted, LoanStatusWrittenOff},
	LoanStatusDefaulted:   {LoanStatusWrittenOff, LoanStatusCompleted},
}

// CanTransitionTo reports whether the lifecycle permits a move to target
func (s LoanStatus) CanTransitionTo(target LoanStatus) bool {
	for _, allowed := range loanTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsOpen reports whether the loan still carries exposure
func (s LoanStatus) IsOpen() bool {
	switch s {
	case LoanStatusApproved, LoanStatusDisbursed, LoanStatusActive:
		return true
	}
	return false
}

// Loan represents a loan account entity
type Loan struct {
	ID                   uuid.UUID          `json:"id"`
	LoanNumber           string             `json:"loanNumber"`
	CustomerID           uuid.UUID          `json:"customerId"`
	ProductID            uuid.UUID          `json:"productId"`
	Amount               decimal.Decimal    `json:"amount"`
	InterestRate         decimal.Decimal    `json:"interestRate"`
	TenureMonths         int                `json:"tenureMonths"`
	RepaymentFrequency   RepaymentFrequency `json:"repaymentFrequency"`
	Purpose              string             `json:"purpose"`
	CollateralType       null.String        `json:"collateralType,omitempty"`
	CollateralValue      decimal.NullDecimal `json:"collateralValue,omitempty"`
	Status               LoanStatus         `json:"status"`
	RejectionReason      null.String        `json:"rejectionReason,omitempty"`
	InstallmentAmount    decimal.Decimal    `json:"installmentAmount"`
	TotalRepayment       decimal.Decimal    `json:"totalRepayment"`
	ProcessingFee        decimal.Decimal    `json:"processingFee"`
	InsuranceFee         decimal.Decimal    `json:"insuranceFee"`
	OutstandingPrincipal decimal.Decimal    `json:"outstandingPrincipal"`
	AccruedInterest      decimal.Decimal    `json:"accruedInterest"`
	PenaltyBalance       decimal.Decimal    `json:"penaltyBalance"`
	TotalPaid            decimal.Decimal    `json:"totalPaid"`
	DaysOverdue          int                `json:"daysOverdue"`
	NextDueDate          *time.Time         `json:"nextDueDate,omitempty"`
	AppliedAt            time.Time          `json:"appliedAt"`
	ReviewedBy           *uuid.UUID         `json:"reviewedBy,omitempty"`
	ApprovedAt           *time.Time         `json:"approvedAt,omitempty"`
	DisbursedAt          *time.Time         `json:"disbursedAt,omitempty"`
	ClosedAt             *time.Time         `json:"closedAt,omitempty"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
	DeletedAt            *time.Time         `json:"-"`
}

// TotalOutstanding is principal plus accrued interest plus penalties
func (l *Loan) TotalOutstanding() decimal.Decimal {
	return l.OutstandingPrincipal.Add(l.AccruedInterest).Add(l.PenaltyBalance)
}

// ApplyLoanInput represents a loan application
type ApplyLoanInput struct {
	CustomerID      uuid.UUID        `json:"customerId" binding:"required"`
	ProductID       uuid.UUID        `json:"productId" binding:"required"`
	Amount          decimal.Decimal  `json:"amount" binding:"required"`
	TenureMonths    int              `json:"tenureMonths" binding:"required,gte=1,lte=60"`
	Purpose         string           `json:"purpose" binding:"required,min=10,max=500"`
	CollateralType  string           `json:"collateralType,omitempty"`
	CollateralValue *decimal.Decimal `json:"collateralValue,omitempty"`
}

// ReviewLoanInput carries an approval or rejection decision
type ReviewLoanInput struct {
	Approve         bool   `json:"approve"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}

// DisburseLoanInput records the disbursement channel
type DisburseLoanInput struct {
	Channel   PaymentChannel `json:"channel" binding:"required"`
	Reference string         `json:"reference,omitempty"`
}

// RepayLoanInput records an incoming repayment
type RepayLoanInput struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Channel   PaymentChannel  `json:"channel" binding:"required"`
	Reference string          `json:"reference,omitempty"`
}

// LoanFilter narrows loan listings
type LoanFilter struct {
	CustomerID *uuid.UUID
	ProductID  *uuid.UUID
	Status     LoanStatus
	Overdue    bool
}

// LoanScheduleEntry is one repayment installment of a loan
type LoanScheduleEntry struct {
	Number           int             `json:"number"`
	DueDate          time.Time       `json:"dueDate"`
	Amount           decimal.Decimal `json:"amount"`
	PrincipalPortion decimal.Decimal `json:"principalPortion"`
	InterestPortion  decimal.Decimal `json:"interestPortion"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	Paid             bool            `json:"paid"`
}

// EarlySettlementQuote prices closing a loan before maturity
type EarlySettlementQuote struct {
	LoanID               uuid.UUID       `json:"loanId"`
	OutstandingPrincipal decimal.Decimal `json:"outstandingPrincipal"`
	InterestRebate       decimal.Decimal `json:"interestRebate"`
	SettlementPenalty    decimal.Decimal `json:"settlementPenalty"`
	TotalDue             decimal.Decimal `json:"totalDue"`
	QuotedAt             time.Time       `json:"quotedAt"`
}

// LoanAnalytics aggregates portfolio-wide loan statistics
type LoanAnalytics struct {
	TotalLoans          int64            `json:"totalLoans"`
	ActiveLoans         int64            `json:"activeLoans"`
	OverdueLoans        int64            `json:"overdueLoans"`
	TotalDisbursed      decimal.Decimal  `json:"totalDisbursed"`
	TotalOutstanding    decimal.Decimal  `json:"totalOutstanding"`
	TotalRepaid         decimal.Decimal  `json:"totalRepaid"`
	PortfolioAtRisk     decimal.Decimal  `json:"portfolioAtRisk"`
	ByStatus            map[string]int64 `json:"byStatus"`
	ByProduct           map[string]int64 `json:"byProduct"`
}
