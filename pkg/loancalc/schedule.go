package loancalc

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is a single row of a repayment schedule.
type Installment struct {
	Number              int             `json:"paymentNumber"`
	DueDate             time.Time       `json:"dueDate"`
	Amount              decimal.Decimal `json:"installmentAmount"`
	PrincipalPortion    decimal.Decimal `json:"principalPayment"`
	InterestPortion     decimal.Decimal `json:"interestPayment"`
	RemainingBalance    decimal.Decimal `json:"remainingBalance"`
	CumulativePrincipal decimal.Decimal `json:"cumulativePrincipal"`
	CumulativeInterest  decimal.Decimal `json:"cumulativeInterest"`
}

// GenerateSchedule produces the full repayment schedule for a loan. The last
// installment is adjusted so the balance closes at exactly zero.
func GenerateSchedule(principal, annualRate decimal.Decimal, tenureMonths int, freq Frequency, startDate time.Time) ([]Installment, error) {
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

	installment := round(installmentFor(principal, periodicRate, periods))

	schedule := make([]Installment, 0, periods)
	balance := principal
	cumInterest := decimal.Zero
	due := startDate

	for number := 1; number <= periods; number++ {
		interest := round(balance.Mul(periodicRate))
		principalPortion := installment.Sub(interest)
		amount := installment

		// Final installment clears whatever balance remains.
		if number == periods || principalPortion.GreaterThan(balance) {
			principalPortion = balance
			amount = interest.Add(principalPortion)
		}

		balance = balance.Sub(principalPortion)
		cumInterest = cumInterest.Add(interest)

		schedule = append(schedule, Installment{
			Number:              number,
			DueDate:             due,
			Amount:              amount,
			PrincipalPortion:    principalPortion,
			InterestPortion:     interest,
			RemainingBalance:    balance,
			CumulativePrincipal: principal.Sub(balance),
			CumulativeInterest:  cumInterest,
		})

		if balance.LessThanOrEqual(decimal.Zero) {
			break
		}
		due = nextDueDate(due, freq)
	}

	return schedule, nil
}
