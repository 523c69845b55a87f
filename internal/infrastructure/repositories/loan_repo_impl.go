package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/infrastructure/models"
)

// LoanRepository implements loan account data operations
type LoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// Create creates a new loan
func (r *LoanRepository) Create(ctx context.Context, loan *entities.Loan) error {
	m := loanToModel(loan)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	loan.ID = m.ID
	return nil
}

// GetByID gets a loan by ID
func (r *LoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Loan, error) {
	var m models.Loan
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return loanToEntity(&m), nil
}

// GetByLoanNumber gets a loan by its loan number
func (r *LoanRepository) GetByLoanNumber(ctx context.Context, number string) (*entities.Loan, error) {
	var m models.Loan
	if err := r.db.WithContext(ctx).Where("loan_number = ?", number).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return loanToEntity(&m), nil
}

// Update persists the loan's lifecycle and balance fields
func (r *LoanRepository) Update(ctx context.Context, loan *entities.Loan) error {
	var collateral *decimal.Decimal
	if loan.CollateralValue.Valid {
		v := loan.CollateralValue.Decimal
		collateral = &v
	}

	updates := map[string]interface{}{
		"status":                string(loan.Status),
		"rejection_reason":      loan.RejectionReason.Ptr(),
		"collateral_type":       loan.CollateralType.Ptr(),
		"collateral_value":      collateral,
		"installment_amount":    loan.InstallmentAmount,
		"total_repayment":       loan.TotalRepayment,
		"processing_fee":        loan.ProcessingFee,
		"insurance_fee":         loan.InsuranceFee,
		"outstanding_principal": loan.OutstandingPrincipal,
		"accrued_interest":      loan.AccruedInterest,
		"penalty_balance":       loan.PenaltyBalance,
		"total_paid":            loan.TotalPaid,
		"days_overdue":          loan.DaysOverdue,
		"next_due_date":         loan.NextDueDate,
		"reviewed_by":           loan.ReviewedBy,
		"approved_at":           loan.ApprovedAt,
		"disbursed_at":          loan.DisbursedAt,
		"closed_at":             loan.ClosedAt,
		"updated_at":            time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Loan{}).Where("id = ?", loan.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists loans matching the filter with pagination
func (r *LoanRepository) List(ctx context.Context, filter entities.LoanFilter, limit, offset int) ([]*entities.Loan, int, error) {
	query := r.db.WithContext(ctx).Model(&models.Loan{})

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Overdue {
		query = query.Where("days_overdue > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var loanModels []models.Loan
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&loanModels).Error; err != nil {
		return nil, 0, err
	}

	loans := make([]*entities.Loan, 0, len(loanModels))
	for i := range loanModels {
		loans = append(loans, loanToEntity(&loanModels[i]))
	}
	return loans, int(total), nil
}

// CountOpenByCustomer counts a customer's loans that still carry exposure
func (r *LoanRepository) CountOpenByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	open := []string{
		string(entities.LoanStatusApproved),
		string(entities.LoanStatusDisbursed),
		string(entities.LoanStatusActive),
	}

	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Loan{}).
		Where("customer_id = ? AND status IN ?", customerID, open).
		Count(&count).Error
	return count, err
}

// CountCreatedInYear counts loans created in the given year,
// used for sequential loan number generation
func (r *LoanRepository) CountCreatedInYear(ctx context.Context, year int) (int64, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Loan{}).
		Unscoped().
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}

// ListDueBefore lists loans in the given statuses whose next due date
// falls before the cutoff. Used by the overdue sweep.
func (r *LoanRepository) ListDueBefore(ctx context.Context, cutoff time.Time, statuses []entities.LoanStatus) ([]*entities.Loan, error) {
	statusStrings := make([]string, 0, len(statuses))
	for _, s := range statuses {
		statusStrings = append(statusStrings, string(s))
	}

	var loanModels []models.Loan
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND next_due_date IS NOT NULL AND next_due_date < ?", statusStrings, cutoff).
		Find(&loanModels).Error; err != nil {
		return nil, err
	}

	loans := make([]*entities.Loan, 0, len(loanModels))
	for i := range loanModels {
		loans = append(loans, loanToEntity(&loanModels[i]))
	}
	return loans, nil
}

// ListStaleApplications lists applications still awaiting review that
// were submitted before the given time
func (r *LoanRepository) ListStaleApplications(ctx context.Context, appliedBefore time.Time) ([]*entities.Loan, error) {
	pending := []string{
		string(entities.LoanStatusSubmitted),
		string(entities.LoanStatusUnderReview),
	}

	var loanModels []models.Loan
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND applied_at < ?", pending, appliedBefore).
		Find(&loanModels).Error; err != nil {
		return nil, err
	}

	loans := make([]*entities.Loan, 0, len(loanModels))
	for i := range loanModels {
		loans = append(loans, loanToEntity(&loanModels[i]))
	}
	return loans, nil
}

// Analytics aggregates loan counts and balances across the portfolio
func (r *LoanRepository) Analytics(ctx context.Context) (*entities.LoanAnalytics, error) {
	out := &entities.LoanAnalytics{
		ByStatus:  make(map[string]int64),
		ByProduct: make(map[string]int64),
	}

	if err := r.db.WithContext(ctx).Model(&models.Loan{}).Count(&out.TotalLoans).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("status = ?", string(entities.LoanStatusActive)).
		Count(&out.ActiveLoans).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("days_overdue > 0").
		Count(&out.OverdueLoans).Error; err != nil {
		return nil, err
	}

	type sums struct {
		TotalDisbursed   decimal.Decimal
		TotalOutstanding decimal.Decimal
		TotalRepaid      decimal.Decimal
		AtRisk           decimal.Decimal
	}
	var s sums
	if err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Select(`
			COALESCE(SUM(CASE WHEN disbursed_at IS NOT NULL THEN amount ELSE 0 END), 0) AS total_disbursed,
			COALESCE(SUM(outstanding_principal + accrued_interest + penalty_balance), 0) AS total_outstanding,
			COALESCE(SUM(total_paid), 0) AS total_repaid,
			COALESCE(SUM(CASE WHEN days_overdue > 30 THEN outstanding_principal ELSE 0 END), 0) AS at_risk`).
		Scan(&s).Error; err != nil {
		return nil, err
	}
	out.TotalDisbursed = s.TotalDisbursed
	out.TotalOutstanding = s.TotalOutstanding
	out.TotalRepaid = s.TotalRepaid

	// PAR: principal overdue beyond 30 days as a share of outstanding principal
	var outstandingPrincipal decimal.Decimal
	if err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Select("COALESCE(SUM(outstanding_principal), 0)").
		Scan(&outstandingPrincipal).Error; err != nil {
		return nil, err
	}
	if outstandingPrincipal.IsPositive() {
		out.PortfolioAtRisk = s.AtRisk.Div(outstandingPrincipal).Mul(decimal.NewFromInt(100)).Round(2)
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var byStatus []bucket
	if err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Select("status AS key, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, b := range byStatus {
		out.ByStatus[b.Key] = b.Count
	}

	var byProduct []bucket
	if err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Select("CAST(product_id AS TEXT) AS key, COUNT(*) AS count").
		Group("product_id").
		Scan(&byProduct).Error; err != nil {
		return nil, err
	}
	for _, b := range byProduct {
		out.ByProduct[b.Key] = b.Count
	}

	return out, nil
}

func loanToModel(l *entities.Loan) *models.Loan {
	var collateral *decimal.Decimal
	if l.CollateralValue.Valid {
		v := l.CollateralValue.Decimal
		collateral = &v
	}

	return &models.Loan{
		ID:                   l.ID,
		LoanNumber:           l.LoanNumber,
		CustomerID:           l.CustomerID,
		ProductID:            l.ProductID,
		Amount:               l.Amount,
		InterestRate:         l.InterestRate,
		TenureMonths:         l.TenureMonths,
		RepaymentFrequency:   string(l.RepaymentFrequency),
		Purpose:              l.Purpose,
		CollateralType:       l.CollateralType.Ptr(),
		CollateralValue:      collateral,
		Status:               string(l.Status),
		RejectionReason:      l.RejectionReason.Ptr(),
		InstallmentAmount:    l.InstallmentAmount,
		TotalRepayment:       l.TotalRepayment,
		ProcessingFee:        l.ProcessingFee,
		InsuranceFee:         l.InsuranceFee,
		OutstandingPrincipal: l.OutstandingPrincipal,
		AccruedInterest:      l.AccruedInterest,
		PenaltyBalance:       l.PenaltyBalance,
		TotalPaid:            l.TotalPaid,
		DaysOverdue:          l.DaysOverdue,
		NextDueDate:          l.NextDueDate,
		AppliedAt:            l.AppliedAt,
		ReviewedBy:           l.ReviewedBy,
		ApprovedAt:           l.ApprovedAt,
		DisbursedAt:          l.DisbursedAt,
		ClosedAt:             l.ClosedAt,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}

func loanToEntity(m *models.Loan) *entities.Loan {
	var collateral decimal.NullDecimal
	if m.CollateralValue != nil {
		collateral = decimal.NullDecimal{Decimal: *m.CollateralValue, Valid: true}
	}

	return &entities.Loan{
		ID:                   m.ID,
		LoanNumber:           m.LoanNumber,
		CustomerID:           m.CustomerID,
		ProductID:            m.ProductID,
		Amount:               m.Amount,
		InterestRate:         m.InterestRate,
		TenureMonths:         m.TenureMonths,
		RepaymentFrequency:   entities.RepaymentFrequency(m.RepaymentFrequency),
		Purpose:              m.Purpose,
		CollateralType:       null.StringFromPtr(m.CollateralType),
		CollateralValue:      collateral,
		Status:               entities.LoanStatus(m.Status),
		RejectionReason:      null.StringFromPtr(m.RejectionReason),
		InstallmentAmount:    m.InstallmentAmount,
		TotalRepayment:       m.TotalRepayment,
		ProcessingFee:        m.ProcessingFee,
		InsuranceFee:         m.InsuranceFee,
		OutstandingPrincipal: m.OutstandingPrincipal,
		AccruedInterest:      m.AccruedInterest,
		PenaltyBalance:       m.PenaltyBalance,
		TotalPaid:            m.TotalPaid,
		DaysOverdue:          m.DaysOverdue,
		NextDueDate:          m.NextDueDate,
		AppliedAt:            m.AppliedAt,
		ReviewedBy:           m.ReviewedBy,
		ApprovedAt:           m.ApprovedAt,
		DisbursedAt:          m.DisbursedAt,
		ClosedAt:             m.ClosedAt,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
