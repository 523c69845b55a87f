// Package loancalc implements loan arithmetic for the Tujenge platform:
// installment (EMI) calculation, repayment schedules, payment allocation,
// penalties and early settlement. All money values are TZS decimals
// rounded half-up to 2 places.
package loancalc

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is a repayment frequency
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

var (
	ErrInvalidPrincipal = errors.New("principal must be positive")
	ErrInvalidRate      = errors.New("annual rate must not be negative")
	ErrInvalidTenure    = errors.New("tenure months must be positive")
	ErrInvalidFrequency = errors.New("unsupported repayment frequency")
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Bounds on the annual interest rate a product may carry, in percent
var (
	MinAnnualRate = decimal.NewFromInt(5)
	MaxAnnualRate = decimal.NewFromInt(30)
)

// Terms holds the full result of a loan term calculation
type Terms struct {
	Principal           decimal.Decimal `json:"principal"`
	AnnualRate          decimal.Decimal `json:"annualInterestRate"`
	EffectiveAnnualRate decimal.Decimal `json:"effectiveAnnualRate"`
	APR                 decimal.Decimal `json:"apr"`
	TenureMonths        int             `json:"tenureMonths"`
	Frequency           Frequency       `json:"repaymentFrequency"`
	Periods             int             `json:"numberOfPayments"`
	Installment         decimal.Decimal `json:"installmentAmount"`
	TotalRepayment      decimal.Decimal `json:"totalRepayment"`
	TotalInterest       decimal.Decimal `json:"totalInterest"`
	ProcessingFee       decimal.Decimal `json:"processingFee"`
	InsuranceFee        decimal.Decimal `json:"insuranceFee"`
	TotalFees           decimal.Decimal `json:"totalFees"`
	NetDisbursement     decimal.Decimal `json:"netDisbursement"`
}

// periodsAndRate maps a frequency onto the number of payments for the tenure
// and the periodic interest rate derived from the annual rate.
func periodsAndRate(annualRate decimal.Decimal, tenureMonths int, freq Frequency) (int, decimal.Decimal, error) {
	ratePct := annualRate.Div(hundred)
	switch freq {
	case FrequencyDaily:
		return tenureMonths * 30, ratePct.Div(decimal.NewFromInt(365)), nil
	case FrequencyWeekly:
		return tenureMonths * 4, ratePct.Div(decimal.NewFromInt(52)), nil
	case FrequencyBiweekly:
		return tenureMonths * 2, ratePct.Div(decimal.NewFromInt(26)), nil
	case FrequencyMonthly:
		return tenureMonths, ratePct.Div(decimal.NewFromInt(12)), nil
	default:
		return 0, decimal.Zero, ErrInvalidFrequency
	}
}

// periodsPerYear for effective rate and APR approximations.
func periodsPerYear(freq Frequency) decimal.Decimal {
	switch freq {
	case FrequencyDaily:
		return decimal.NewFromInt(365)
	case FrequencyWeekly:
		return decimal.NewFromInt(52)
	case FrequencyBiweekly:
		return decimal.NewFromInt(26)
	default:
		return decimal.NewFromInt(12)
	}
}

// Calculate computes loan terms for the given principal, annual rate
// (percent), tenure and frequency. Fee rates are percentages of principal.
func Calculate(principal, annualRate decimal.Decimal, tenureMonths int, freq Frequency, processingFeeRate, insuranceRate decimal.Decimal) (*Terms, error) {
	if !principal.IsPositive() {
		return nil, ErrInvalidPrincipal
	}
	if annualRate.IsNegative() {
		return nil, ErrInvalidRate
	}
	if tenureMonths <= 0 {
		return nil, ErrInvalidTenure
	}

	periods, periodicRate, err := periodsAndRate(annualRate, tenureMonths, freq)
	if err != nil {
		return nil, err
	}

	processingFee := round(principal.Mul(processingFeeRate).Div(hundred))
	insuranceFee := round(principal.Mul(insuranceRate).Div(hundred))
	totalFees := processingFee.Add(insuranceFee)

	installment := round(installmentFor(principal, periodicRate, periods))
	totalRepayment := installment.Mul(decimal.NewFromInt(int64(periods)))
	totalInterest := totalRepayment.Sub(principal)

	return &Terms{
		Principal:           principal,
		AnnualRate:          annualRate,
		EffectiveAnnualRate: effectiveAnnualRate(principal, installment, periods, freq),
		APR:                 apr(principal, installment, periods, totalFees, freq),
		TenureMonths:        tenureMonths,
		Frequency:           freq,
		Periods:             periods,
		Installment:         installment,
		TotalRepayment:      totalRepayment,
		TotalInterest:       totalInterest,
		ProcessingFee:       processingFee,
		InsuranceFee:        insuranceFee,
		TotalFees:           totalFees,
		NetDisbursement:     principal.Sub(totalFees),
	}, nil
}

// installmentFor computes EMI = P * r * (1+r)^n / ((1+r)^n - 1).
func installmentFor(principal, periodicRate decimal.Decimal, periods int) decimal.Decimal {
	n := decimal.NewFromInt(int64(periods))
	if periodicRate.IsZero() {
		return principal.Div(n)
	}
	factor := one.Add(periodicRate).Pow(n)
	return principal.Mul(periodicRate).Mul(factor).Div(factor.Sub(one))
}

// effectiveAnnualRate approximates the borrower's true annual cost excluding
// fees, in percent.
func effectiveAnnualRate(principal, installment decimal.Decimal, periods int, freq Frequency) decimal.Decimal {
	n := decimal.NewFromInt(int64(periods))
	avgOutstanding := principal.Mul(n).Div(decimal.NewFromInt(2))
	if avgOutstanding.IsZero() {
		return decimal.Zero
	}
	periodicRate := installment.Mul(n).Sub(principal).Div(avgOutstanding)
	return round(periodicRate.Mul(periodsPerYear(freq)).Mul(hundred))
}

// apr approximates the annual percentage rate including fees, in percent.
func apr(principal, installment decimal.Decimal, periods int, fees decimal.Decimal, freq Frequency) decimal.Decimal {
	netPrincipal := principal.Sub(fees)
	n := decimal.NewFromInt(int64(periods))
	avgOutstanding := netPrincipal.Mul(n).Div(decimal.NewFromInt(2))
	if avgOutstanding.IsZero() || !netPrincipal.IsPositive() {
		return decimal.Zero
	}
	totalCost := installment.Mul(n).Sub(netPrincipal)
	return round(totalCost.Div(avgOutstanding).Mul(periodsPerYear(freq)).Mul(hundred))
}

// Penalty holds an overdue penalty calculation.
type Penalty struct {
	OverdueAmount decimal.Decimal `json:"overdueAmount"`
	DaysOverdue   int             `json:"daysOverdue"`
	PenaltyAmount decimal.Decimal `json:"penaltyAmount"`
	TotalDue      decimal.Decimal `json:"totalAmountDue"`
}

// CalculatePenalty computes the late penalty on an overdue amount.
// penaltyRate is a monthly percentage, converted to a daily rate over 30 days.
func CalculatePenalty(overdueAmount decimal.Decimal, daysOverdue int, penaltyRate decimal.Decimal) Penalty {
	dailyRate := penaltyRate.Div(hundred).Div(decimal.NewFromInt(30))
	penalty := round(overdueAmount.Mul(dailyRate).Mul(decimal.NewFromInt(int64(daysOverdue))))
	return Penalty{
		OverdueAmount: overdueAmount,
		DaysOverdue:   daysOverdue,
		PenaltyAmount: penalty,
		TotalDue:      overdueAmount.Add(penalty),
	}
}

// Settlement holds an early settlement quotation.
type Settlement struct {
	OutstandingPrincipal decimal.Decimal `json:"outstandingPrincipal"`
	AccruedInterest      decimal.Decimal `json:"accruedInterest"`
	InterestRebate       decimal.Decimal `json:"unearnedInterestRebate"`
	SettlementInterest   decimal.Decimal `json:"settlementInterest"`
	SettlementPenalty    decimal.Decimal `json:"earlySettlementPenalty"`
	TotalAmount          decimal.Decimal `json:"totalSettlementAmount"`
}

// settlementPenaltyRate is 2% of outstanding principal.
var settlementPenaltyRate = decimal.NewFromFloat(0.02)

// CalculateEarlySettlement quotes an early settlement using an actuarial
// interest rebate approximation (remaining / (remaining + 6) of accrued
// interest is rebated).
func CalculateEarlySettlement(outstandingPrincipal, accruedInterest decimal.Decimal, remainingMonths int) Settlement {
	rebateFactor := decimal.NewFromInt(int64(remainingMonths)).
		Div(decimal.NewFromInt(int64(remainingMonths + 6)))
	rebate := round(accruedInterest.Mul(rebateFactor))
	settlementInterest := accruedInterest.Sub(rebate)
	penalty := round(outstandingPrincipal.Mul(settlementPenaltyRate))

	return Settlement{
		OutstandingPrincipal: outstandingPrincipal,
		AccruedInterest:      accruedInterest,
		InterestRebate:       rebate,
		SettlementInterest:   settlementInterest,
		SettlementPenalty:    penalty,
		TotalAmount:          outstandingPrincipal.Add(settlementInterest).Add(penalty),
	}
}

// Affordability holds an installment affordability analysis.
type Affordability struct {
	DisposableIncome decimal.Decimal `json:"disposableIncome"`
	DebtToIncome     decimal.Decimal `json:"debtToIncomeRatio"`
	MaxInstallment   decimal.Decimal `json:"maximumAffordableInstallment"`
	Affordable       bool            `json:"isAffordable"`
}

// maxDebtToIncome caps the installment at 40% of monthly income.
var maxDebtToIncome = decimal.NewFromInt(40)

// CheckAffordability evaluates whether an installment fits the customer's
// income, leaving a 20% buffer on disposable income.
func CheckAffordability(monthlyIncome, monthlyExpenses, installment decimal.Decimal) Affordability {
	disposable := monthlyIncome.Sub(monthlyExpenses)
	maxAffordable := round(monthlyIncome.Mul(maxDebtToIncome).Div(hundred))

	var dti decimal.Decimal
	if monthlyIncome.IsPositive() {
		dti = round(installment.Div(monthlyIncome).Mul(hundred))
	}

	buffer := disposable.Mul(decimal.NewFromFloat(0.8))
	affordable := installment.LessThanOrEqual(maxAffordable) && installment.LessThanOrEqual(buffer)

	return Affordability{
		DisposableIncome: disposable,
		DebtToIncome:     dti,
		MaxInstallment:   maxAffordable,
		Affordable:       affordable,
	}
}

// round rounds to currency precision (2dp, half away from zero).
func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// nextDueDate advances a due date by one period.
func nextDueDate(from time.Time, freq Frequency) time.Time {
	switch freq {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return from.AddDate(0, 0, 14)
	default:
		return from.AddDate(0, 1, 0)
	}
}
