package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/domain/repositories"
	"tujenge.backend/pkg/crypto"
	"tujenge.backend/pkg/loancalc"
	"tujenge.backend/pkg/utils"
)

const (
	// collateral must cover at least 120% of the requested amount
	collateralCoverageRate = 1.2

	// monthly late penalty rate in percent, used when a product
	// does not set its own
	penaltyMonthlyRate = 2

	// loans this far past due are marked defaulted by the sweep
	defaultAfterDaysOverdue = 90
)

// caps certain product families below the platform maximum
var loanTypeCaps = map[entities.LoanType]decimal.Decimal{
	entities.LoanTypeEmergency: decimal.NewFromInt(2000000),
	entities.LoanTypePersonal:  decimal.NewFromInt(5000000),
}

// LoanUsecase handles the loan lifecycle from application to closure
type LoanUsecase struct {
	loanRepo     repositories.LoanRepository
	scheduleRepo repositories.LoanScheduleRepository
	productRepo  repositories.LoanProductRepository
	customerRepo repositories.CustomerRepository
	txRepo       repositories.TransactionRepository
	customerUC   *CustomerUsecase
	auditUC      *AuditUsecase
	uow          repositories.UnitOfWork

	minAmount decimal.Decimal
	maxAmount decimal.Decimal
}

// NewLoanUsecase creates a new loan usecase
func NewLoanUsecase(
	loanRepo repositories.LoanRepository,
	scheduleRepo repositories.LoanScheduleRepository,
	productRepo repositories.LoanProductRepository,
	customerRepo repositories.CustomerRepository,
	txRepo repositories.TransactionRepository,
	customerUC *CustomerUsecase,
	auditUC *AuditUsecase,
	uow repositories.UnitOfWork,
	minAmount, maxAmount decimal.Decimal,
) *LoanUsecase {
	return &LoanUsecase{
		loanRepo:     loanRepo,
		scheduleRepo: scheduleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		txRepo:       txRepo,
		customerUC:   customerUC,
		auditUC:      auditUC,
		uow:          uow,
		minAmount:    minAmount,
		maxAmount:    maxAmount,
	}
}

// Apply validates a loan application and creates it in submitted state
func (u *LoanUsecase) Apply(ctx context.Context, actor Actor, input *entities.ApplyLoanInput) (*entities.Loan, error) {
	product, err := u.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, domainerrors.ErrProductInactive
	}

	eligibility, err := u.customerUC.CheckLoanEligibility(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		return nil, domainerrors.BadRequest("CUSTOMER_NOT_ELIGIBLE", strings.Join(eligibility.Reasons, "; "))
	}

	if input.Amount.LessThan(u.minAmount) || input.Amount.GreaterThan(u.maxAmount) {
		return nil, domainerrors.BadRequest("AMOUNT_OUT_OF_RANGE",
			fmt.Sprintf("loan amount must be between %s and %s TZS", u.minAmount, u.maxAmount))
	}
	if input.Amount.LessThan(product.MinAmount) || input.Amount.GreaterThan(product.MaxAmount) {
		return nil, domainerrors.BadRequest("AMOUNT_OUT_OF_RANGE", "loan amount is outside the product's range")
	}
	if ceiling, ok := loanTypeCaps[product.LoanType]; ok && input.Amount.GreaterThan(ceiling) {
		return nil, domainerrors.BadRequest("AMOUNT_OUT_OF_RANGE",
			fmt.Sprintf("%s loans may not exceed %s TZS", product.LoanType, ceiling))
	}
	if input.TenureMonths < product.MinTenureMonths || input.TenureMonths > product.MaxTenureMonths {
		return nil, domainerrors.BadRequest("TENURE_OUT_OF_RANGE", "tenure is outside the product's range")
	}

	if product.RequiresCollateral {
		if input.CollateralType == "" || input.CollateralValue == nil {
			return nil, domainerrors.BadRequest("COLLATERAL_REQUIRED", "this product requires collateral")
		}
		required := input.Amount.Mul(decimal.NewFromFloat(collateralCoverageRate))
		if input.CollateralValue.LessThan(required) {
			return nil, domainerrors.BadRequest("COLLATERAL_INSUFFICIENT",
				fmt.Sprintf("collateral must cover at least %s TZS", required.Round(2)))
		}
	}

	terms, err := loancalc.Calculate(
		input.Amount, product.InterestRate, input.TenureMonths,
		loancalc.Frequency(product.RepaymentFrequency),
		product.ProcessingFeeRate, product.InsuranceFeeRate,
	)
	if err != nil {
		return nil, domainerrors.BadRequest("INVALID_LOAN_TERMS", err.Error())
	}

	// the installment must fit the customer's income
	monthlyInstallment := terms.Installment
	if product.RepaymentFrequency != entities.RepaymentMonthly {
		monthlyInstallment = terms.TotalRepayment.Div(decimal.NewFromInt(int64(input.TenureMonths))).Round(2)
	}
	affordability := loancalc.CheckAffordability(
		decimal.NewFromFloat(eligibility.MonthlyIncome), decimal.Zero, monthlyInstallment)
	if !affordability.Affordable {
		return nil, domainerrors.BadRequest("INSTALLMENT_UNAFFORDABLE",
			fmt.Sprintf("monthly installment %s exceeds the affordable maximum %s", monthlyInstallment, affordability.MaxInstallment))
	}

	now := time.Now()
	loan := &entities.Loan{
		ID:                   utils.GenerateUUIDv7(),
		CustomerID:           input.CustomerID,
		ProductID:            product.ID,
		Amount:               input.Amount,
		InterestRate:         product.InterestRate,
		TenureMonths:         input.TenureMonths,
		RepaymentFrequency:   product.RepaymentFrequency,
		Purpose:              input.Purpose,
		Status:               entities.LoanStatusSubmitted,
		InstallmentAmount:    terms.Installment,
		TotalRepayment:       terms.TotalRepayment,
		ProcessingFee:        terms.ProcessingFee,
		InsuranceFee:         terms.InsuranceFee,
		OutstandingPrincipal: input.Amount,
		AppliedAt:            now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if input.CollateralType != "" {
		loan.CollateralType = null.StringFrom(input.CollateralType)
	}
	if input.CollateralValue != nil {
		loan.CollateralValue = decimal.NullDecimal{Decimal: *input.CollateralValue, Valid: true}
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		seq, err := u.loanRepo.CountCreatedInYear(txCtx, now.Year())
		if err != nil {
			return err
		}
		loan.LoanNumber = fmt.Sprintf("LN-%d-%06d", now.Year(), seq+1)
		return u.loanRepo.Create(txCtx, loan)
	})
	if err != nil {
		return nil, err
	}

	u.auditUC.Record(ctx, actor, entities.AuditActionCreate, "loan", loan.ID.String(), map[string]string{
		"loanNumber": loan.LoanNumber,
		"amount":     loan.Amount.String(),
	})
	return loan, nil
}

// GetByID gets a loan by ID
func (u *LoanUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Loan, error) {
	return u.loanRepo.GetByID(ctx, id)
}

// GetByLoanNumber gets a loan by loan number
func (u *LoanUsecase) GetByLoanNumber(ctx context.Context, number string) (*entities.Loan, error) {
	return u.loanRepo.GetByLoanNumber(ctx, number)
}

// List lists loans matching the filter
func (u *LoanUsecase) List(ctx context.Context, filter entities.LoanFilter, limit, offset int) ([]*entities.Loan, int, error) {
	return u.loanRepo.List(ctx, filter, limit, offset)
}

func (u *LoanUsecase) transition(loan *entities.Loan, target entities.LoanStatus) error {
	if !loan.Status.CanTransitionTo(target) {
		return domainerrors.Conflict("INVALID_STATUS_TRANSITION",
			fmt.Sprintf("loan in status %s cannot move to %s", loan.Status, target))
	}
	loan.Status = target
	return nil
}

// StartReview moves a submitted application into review
func (u *LoanUsecase) StartReview(ctx context.Context, actor Actor, id uuid.UUID) (*entities.Loan, error) {
	loan, err := u.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.transition(loan, entities.LoanStatusUnderReview); err != nil {
		return nil, err
	}
	loan.ReviewedBy = actor.ID

	if err := u.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}
	u.auditUC.Record(ctx, actor, entities.AuditActionUpdate, "loan", loan.ID.String(), map[string]string{"status": string(loan.Status)})
	return loan, nil
}

// Review approves or rejects a loan under review
func (u *LoanUsecase) Review(ctx context.Context, actor Actor, id uuid.UUID, input *entities.ReviewLoanInput) (*entities.Loan, error) {
	loan, err := u.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Approve {
		if err := u.transition(loan, entities.LoanStatusApproved); err != nil {
			return nil, err
		}
		now := time.Now()
		loan.ApprovedAt = &now
	} else {
		if input.RejectionReason == "" {
			return nil, domainerrors.BadRequest("REASON_REQUIRED", "rejection requires a reason")
		}
		if err := u.transition(loan, entities.LoanStatusRejected); err != nil {
			return nil, err
		}
		loan.RejectionReason = null.StringFrom(input.RejectionReason)
	}
	loan.ReviewedBy = actor.ID

	if err := u.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	action := entities.AuditActionApprove
	if !input.Approve {
		action = entities.AuditActionReject
	}
	u.auditUC.Record(ctx, actor, action, "loan", loan.ID.String(), map[string]string{"status": string(loan.Status)})
	return loan, nil
}

func newTransactionReference() string {
	token, err := crypto.GenerateRandomToken(6)
	if err != nil {
		token = utils.GenerateUUIDv7().String()[:12]
	}
	return "TXN-" + strings.ToUpper(token)
}

// Disburse pays out an approved loan: the repayment schedule is created,
// balances are opened and the disbursement is recorded on the ledger,
// all within one transaction.
func (u *LoanUsecase) Disburse(ctx context.Context, actor Actor, id uuid.UUID, input *entities.DisburseLoanInput) (*entities.Loan, error) {
	loan, err := u.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.transition(loan, entities.LoanStatusDisbursed); err != nil {
		return nil, err
	}

	now := time.Now()
	schedule, err := loancalc.GenerateSchedule(
		loan.Amount, loan.InterestRate, loan.TenureMonths,
		loancalc.Frequency(loan.RepaymentFrequency), now,
	)
	if err != nil {
		return nil, err
	}

	entries := make([]*entities.LoanScheduleEntry, 0, len(schedule))
	for _, row := range schedule {
		entries = append(entries, &entities.LoanScheduleEntry{
			Number:           row.Number,
			DueDate:          row.DueDate,
			Amount:           row.Amount,
			PrincipalPortion: row.PrincipalPortion,
			InterestPortion:  row.InterestPortion,
			RemainingBalance: row.RemainingBalance,
		})
	}

	// disbursed is a transient state; the account opens active
	loan.Status = entities.LoanStatusActive
	loan.DisbursedAt = &now
	loan.OutstandingPrincipal = loan.Amount
	loan.NextDueDate = &schedule[0].DueDate

	disbursement := &entities.Transaction{
		ID:         utils.GenerateUUIDv7(),
		Reference:  newTransactionReference(),
		LoanID:     loan.ID,
		CustomerID: loan.CustomerID,
		Type:       entities.TransactionTypeDisbursement,
		Amount:     loan.Amount,
		Currency:   "TZS",
		Channel:    input.Channel,
		Status:     entities.TransactionStatusCompleted,
		FeesPaid:   loan.ProcessingFee.Add(loan.InsuranceFee),
		RecordedBy: actor.ID,
		Narration:  null.StringFrom(fmt.Sprintf("Disbursement of %s", loan.LoanNumber)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if input.Reference != "" {
		disbursement.ChannelRef = null.StringFrom(input.Reference)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.scheduleRepo.CreateBatch(txCtx, loan.ID, entries); err != nil {
			return err
		}
		if err := u.txRepo.Create(txCtx, disbursement); err != nil {
			return err
		}
		return u.loanRepo.Update(txCtx, loan)
	})
	if err != nil {
		return nil, err
	}

	u.auditUC.Record(ctx, actor, entities.AuditActionDisburse, "loan", loan.ID.String(), map[string]string{
		"amount":  loan.Amount.String(),
		"channel": string(input.Channel),
	})
	return loan, nil
}

// Repay applies a repayment to an active or defaulted loan. The payment
// is allocated fees first, then penalties, interest and principal.
func (u *LoanUsecase) Repay(ctx context.Context, actor Actor, id uuid.UUID, input *entities.RepayLoanInput) (*entities.Transaction, error) {
	loan, err := u.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan.Status != entities.LoanStatusActive && loan.Status != entities.LoanStatusDefaulted {
		return nil, domainerrors.ErrInvalidLoanStatus
	}
	if !input.Amount.IsPositive() {
		return nil, domainerrors.BadRequest("INVALID_AMOUNT", "repayment amount must be positive")
	}
	if input.Amount.GreaterThan(loan.TotalOutstanding()) {
		return nil, domainerrors.ErrAmountExceedsBalance
	}

	allocation := loancalc.AllocatePayment(
		input.Amount, loan.OutstandingPrincipal, loan.AccruedInterest,
		loan.PenaltyBalance, decimal.Zero,
	)

	now := time.Now()
	loan.OutstandingPrincipal = allocation.NewPrincipal
	loan.AccruedInterest = allocation.NewInterest
	loan.PenaltyBalance = allocation.NewPenalty
	loan.TotalPaid = loan.TotalPaid.Add(input.Amount)
	loan.UpdatedAt = now

	closed := false
	if !loan.TotalOutstanding().IsPositive() {
		if err := u.transition(loan, entities.LoanStatusCompleted); err != nil {
			return nil, err
		}
		loan.ClosedAt = &now
		loan.NextDueDate = nil
		loan.DaysOverdue = 0
		closed = true
	}

	payment := &entities.Transaction{
		ID:            utils.GenerateUUIDv7(),
		Reference:     newTransactionReference(),
		LoanID:        loan.ID,
		CustomerID:    loan.CustomerID,
		Type:          entities.TransactionTypeRepayment,
		Amount:        input.Amount,
		Currency:      "TZS",
		Channel:       input.Channel,
		Status:        entities.TransactionStatusCompleted,
		PrincipalPaid: allocation.PrincipalPayment,
		InterestPaid:  allocation.InterestPayment,
		PenaltyPaid:   allocation.PenaltyPayment,
		FeesPaid:      allocation.FeesPayment,
		RecordedBy:    actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if input.Reference != "" {
		payment.ChannelRef = null.StringFrom(input.Reference)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.txRepo.Create(txCtx, payment); err != nil {
			return err
		}
		if err := u.loanRepo.Update(txCtx, loan); err != nil {
			return err
		}
		return u.markSchedulePaid(txCtx, loan, closed)
	})
	if err != nil {
		return nil, err
	}

	u.auditUC.Record(ctx, actor, entities.AuditActionRepay, "loan", loan.ID.String(), map[string]string{
		"amount":    input.Amount.String(),
		"reference": payment.Reference,
	})
	return payment, nil
}

// markSchedulePaid flags installments covered by the principal repaid so
// far and advances the next due date
func (u *LoanUsecase) markSchedulePaid(ctx context.Context, loan *entities.Loan, closed bool) error {
	schedule, err := u.scheduleRepo.GetByLoanID(ctx, loan.ID)
	if err != nil {
		return err
	}
	if len(schedule) == 0 {
		return nil
	}

	if closed {
		return u.scheduleRepo.MarkPaidThrough(ctx, loan.ID, schedule[len(schedule)-1].Number)
	}

	principalRepaid := loan.Amount.Sub(loan.OutstandingPrincipal)
	covered := 0
	cumulative := decimal.Zero
	for _, entry := range schedule {
		cumulative = cumulative.Add(entry.PrincipalPortion)
		if cumulative.GreaterThan(principalRepaid) {
			loan.NextDueDate = &entry.DueDate
			if err := u.loanRepo.Update(ctx, loan); err != nil {
				return err
			}
			break
		}
		covered = entry.Number
	}
	if covered == 0 {
		return nil
	}
	return u.scheduleRepo.MarkPaidThrough(ctx, loan.ID, covered)
}

// GetSchedule returns a loan's repayment schedule
func (u *LoanUsecase) GetSchedule(ctx context.Context, id uuid.UUID) ([]*entities.LoanScheduleEntry, error) {
	if _, err := u.loanRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return u.scheduleRepo.GetByLoanID(ctx, id)
}

// QuoteEarlySettlement prices closing an active loan today
func (u *LoanUsecase) QuoteEarlySettlement(ctx context.Context, id uuid.UUID) (*entities.EarlySettlementQuote, error) {
	loan, err := u.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan.Status != entities.LoanStatusActive {
		return nil, domainerrors.ErrInvalidLoanStatus
	}

	remainingMonths := remainingTenureMonths(loan)
	settlement := loancalc.CalculateEarlySettlement(loan.OutstandingPrincipal, loan.AccruedInterest, remainingMonths)

	return &entities.EarlySettlementQuote{
		LoanID:               loan.ID,
		OutstandingPrincipal: settlement.OutstandingPrincipal,
		InterestRebate:       settlement.InterestRebate,
		SettlementPenalty:    settlement.SettlementPenalty,
		TotalDue:             settlement.TotalAmount.Add(loan.PenaltyBalance),
		QuotedAt:             time.Now(),
	}, nil
}

func remainingTenureMonths(loan *entities.Loan) int {
	if loan.DisbursedAt == nil {
		return loan.TenureMonths
	}
	elapsed := int(time.Since(*loan.DisbursedAt).Hours() / 24 / 30)
	remaining := loan.TenureMonths - elapsed
	if remaining < 1 {
		remaining = 1
	}
	return remaining
}

// SettleEarly closes an active loan against a settlement quote
func (u *LoanUsecase) SettleEarly(ctx context.Context, actor Actor, id uuid.UUID, input *entities.RepayLoanInput) (*entities.Transaction, error) {
	quote, err := u.QuoteEarlySettlement(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Amount.LessThan(quote.TotalDue) {
		return nil, domainerrors.BadRequest("SETTLEMENT_SHORT",
			fmt.Sprintf("settlement requires %s TZS", quote.TotalDue))
	}

	loan, err := u.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	loan.Status = entities.LoanStatusCompleted
	loan.OutstandingPrincipal = decimal.Zero
	loan.AccruedInterest = decimal.Zero
	loan.PenaltyBalance = decimal.Zero
	loan.TotalPaid = loan.TotalPaid.Add(quote.TotalDue)
	loan.DaysOverdue = 0
	loan.NextDueDate = nil
	loan.ClosedAt = &now
	loan.UpdatedAt = now

	settlementTx := &entities.Transaction{
		ID:            utils.GenerateUUIDv7(),
		Reference:     newTransactionReference(),
		LoanID:        loan.ID,
		CustomerID:    loan.CustomerID,
		Type:          entities.TransactionTypeRepayment,
		Amount:        quote.TotalDue,
		Currency:      "TZS",
		Channel:       input.Channel,
		Status:        entities.TransactionStatusCompleted,
		PrincipalPaid: quote.OutstandingPrincipal,
		PenaltyPaid:   quote.SettlementPenalty,
		RecordedBy:    actor.ID,
		Narration:     null.StringFrom("Early settlement"),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if input.Reference != "" {
		settlementTx.ChannelRef = null.StringFrom(input.Reference)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.txRepo.Create(txCtx, settlementTx); err != nil {
			return err
		}
		if err := u.loanRepo.Update(txCtx, loan); err != nil {
			return err
		}
		return u.markSchedulePaid(txCtx, loan, true)
	})
	if err != nil {
		return nil, err
	}

	u.auditUC.Record(ctx, actor, entities.AuditActionRepay, "loan", loan.ID.String(), map[string]string{
		"settlement": quote.TotalDue.String(),
	})
	return settlementTx, nil
}

// ProcessOverdueLoans recomputes overdue state for active loans past
// their due date: days overdue, penalty balance, and default marking.
// Returns the number of loans touched.
func (u *LoanUsecase) ProcessOverdueLoans(ctx context.Context) (int, error) {
	now := time.Now()
	due, err := u.loanRepo.ListDueBefore(ctx, now, []entities.LoanStatus{entities.LoanStatusActive})
	if err != nil {
		return 0, err
	}

	// products are shared across loans, fetch each rate once per sweep
	rates := map[uuid.UUID]decimal.Decimal{}
	penaltyRate := func(txCtx context.Context, productID uuid.UUID) decimal.Decimal {
		if rate, ok := rates[productID]; ok {
			return rate
		}
		rate := decimal.NewFromInt(penaltyMonthlyRate)
		if product, err := u.productRepo.GetByID(txCtx, productID); err == nil && product.PenaltyRate.IsPositive() {
			rate = product.PenaltyRate
		}
		rates[productID] = rate
		return rate
	}

	touched := 0
	for _, loan := range due {
		days := int(now.Sub(*loan.NextDueDate).Hours() / 24)
		if days <= 0 {
			continue
		}

		penalty := loancalc.CalculatePenalty(loan.InstallmentAmount, days, penaltyRate(ctx, loan.ProductID))
		loan.DaysOverdue = days
		loan.PenaltyBalance = penalty.PenaltyAmount
		// the missed installment's interest falls due with it
		loan.AccruedInterest = overdueInterest(loan)

		if days >= defaultAfterDaysOverdue {
			if loan.Status.CanTransitionTo(entities.LoanStatusDefaulted) {
				loan.Status = entities.LoanStatusDefaulted
			}
		}

		if err := u.loanRepo.Update(ctx, loan); err != nil {
			return touched, err
		}
		touched++
	}
	return touched, nil
}

// overdueInterest sums interest portions of unpaid installments already due
func overdueInterest(loan *entities.Loan) decimal.Decimal {
	// approximation from the level installment: interest due so far is
	// installment minus the principal share of one period
	if loan.NextDueDate == nil {
		return loan.AccruedInterest
	}
	periodic := loan.InstallmentAmount.Sub(
		loan.Amount.Div(decimal.NewFromInt(int64(maxInt(loan.TenureMonths, 1)))),
	)
	if periodic.IsNegative() {
		return loan.AccruedInterest
	}
	return periodic.Round(2)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ExpireStaleApplications rejects applications that sat unreviewed past
// the cutoff. Returns the number of applications expired.
func (u *LoanUsecase) ExpireStaleApplications(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	stale, err := u.loanRepo.ListStaleApplications(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, loan := range stale {
		loan.Status = entities.LoanStatusRejected
		loan.RejectionReason = null.StringFrom("Application expired without review")
		if err := u.loanRepo.Update(ctx, loan); err != nil {
			return expired, err
		}
		expired++
	}
	return expired, nil
}

// Analytics aggregates loan portfolio statistics
func (u *LoanUsecase) Analytics(ctx context.Context) (*entities.LoanAnalytics, error) {
	return u.loanRepo.Analytics(ctx)
}
