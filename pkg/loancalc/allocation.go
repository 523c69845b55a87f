package loancalc

import "github.com/shopspring/decimal"

// Allocation shows how a repayment is split across what the customer owes.
// Tanzania banking convention: fees first, then penalties, then interest,
// then principal.
type Allocation struct {
	TotalPayment     decimal.Decimal `json:"totalPayment"`
	FeesPayment      decimal.Decimal `json:"feesPayment"`
	PenaltyPayment   decimal.Decimal `json:"penaltyPayment"`
	InterestPayment  decimal.Decimal `json:"interestPayment"`
	PrincipalPayment decimal.Decimal `json:"principalPayment"`
	ExcessPayment    decimal.Decimal `json:"excessPayment"`
	NewPrincipal     decimal.Decimal `json:"newPrincipalBalance"`
	NewInterest      decimal.Decimal `json:"newInterestBalance"`
	NewPenalty       decimal.Decimal `json:"newPenaltyBalance"`
	NewFees          decimal.Decimal `json:"newFeesBalance"`
}

// AllocatePayment splits a payment across fees, penalties, interest and
// principal in priority order. Any remainder after principal is reported as
// excess.
func AllocatePayment(payment, outstandingPrincipal, accruedInterest, penalties, feesDue decimal.Decimal) Allocation {
	a := Allocation{TotalPayment: payment}
	remaining := payment

	a.FeesPayment, remaining = drain(remaining, feesDue)
	a.PenaltyPayment, remaining = drain(remaining, penalties)
	a.InterestPayment, remaining = drain(remaining, accruedInterest)
	a.PrincipalPayment, remaining = drain(remaining, outstandingPrincipal)
	a.ExcessPayment = remaining

	a.NewPrincipal = outstandingPrincipal.Sub(a.PrincipalPayment)
	a.NewInterest = accruedInterest.Sub(a.InterestPayment)
	a.NewPenalty = penalties.Sub(a.PenaltyPayment)
	a.NewFees = feesDue.Sub(a.FeesPayment)
	return a
}

// drain pays off up to owed from available, returning the amount paid and
// what is left of available.
func drain(available, owed decimal.Decimal) (paid, left decimal.Decimal) {
	if !available.IsPositive() || !owed.IsPositive() {
		return decimal.Zero, available
	}
	paid = decimal.Min(available, owed)
	return paid, available.Sub(paid)
}
