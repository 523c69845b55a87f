package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// TransactionType enumerates money movements on a loan account
type TransactionType string

const (
	TransactionTypeDisbursement TransactionType = "disbursement"
	TransactionTypeRepayment    TransactionType = "repayment"
	TransactionTypeFee          TransactionType = "fee"
	TransactionTypePenalty      TransactionType = "penalty"
	TransactionTypeReversal     TransactionType = "reversal"
)

// TransactionStatus is the settlement state of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusReversed  TransactionStatus = "reversed"
)

// PaymentChannel is the rail a transaction moved over
type PaymentChannel string

const (
	ChannelMPesa      PaymentChannel = "mpesa"
	ChannelAirtel     PaymentChannel = "airtel_money"
	ChannelTigoPesa   PaymentChannel = "tigo_pesa"
	ChannelHaloPesa   PaymentChannel = "halopesa"
	ChannelBank       PaymentChannel = "bank_transfer"
	ChannelCash       PaymentChannel = "cash"
)

// Transaction represents a ledger entry against a loan
type Transaction struct {
	ID              uuid.UUID         `json:"id"`
	Reference       string            `json:"reference"`
	LoanID          uuid.UUID         `json:"loanId"`
	CustomerID      uuid.UUID         `json:"customerId"`
	Type            TransactionType   `json:"type"`
	Amount          decimal.Decimal   `json:"amount"`
	Currency        string            `json:"currency"`
	Channel         PaymentChannel    `json:"channel"`
	ChannelRef      null.String       `json:"channelRef,omitempty"`
	Status          TransactionStatus `json:"status"`
	Narration       null.String       `json:"narration,omitempty"`
	PrincipalPaid   decimal.Decimal   `json:"principalPaid"`
	InterestPaid    decimal.Decimal   `json:"interestPaid"`
	PenaltyPaid     decimal.Decimal   `json:"penaltyPaid"`
	FeesPaid        decimal.Decimal   `json:"feesPaid"`
	RecordedBy      *uuid.UUID        `json:"recordedBy,omitempty"`
	ReversedBy      *uuid.UUID        `json:"reversedBy,omitempty"`
	ReversalOf      *uuid.UUID        `json:"reversalOf,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// TransactionFilter narrows transaction listings
type TransactionFilter struct {
	LoanID     *uuid.UUID
	CustomerID *uuid.UUID
	Type       TransactionType
	Status     TransactionStatus
	Channel    PaymentChannel
	From       *time.Time
	To         *time.Time
}

// ReverseTransactionInput records why a transaction was backed out
type ReverseTransactionInput struct {
	Reason string `json:"reason" binding:"required,min=5,max=500"`
}

// TransactionSummary aggregates ledger totals over a window
type TransactionSummary struct {
	TotalDisbursed  decimal.Decimal  `json:"totalDisbursed"`
	TotalRepaid     decimal.Decimal  `json:"totalRepaid"`
	TotalFees       decimal.Decimal  `json:"totalFees"`
	TotalPenalties  decimal.Decimal  `json:"totalPenalties"`
	Count           int64            `json:"count"`
	ByChannel       map[string]int64 `json:"byChannel"`
}
