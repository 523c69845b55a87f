package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"tujenge.backend/internal/domain/entities"
	"tujenge.backend/internal/infrastructure/models"
	"tujenge.backend/pkg/utils"
)

// LoanScheduleRepository implements repayment schedule data operations
type LoanScheduleRepository struct {
	db *gorm.DB
}

// NewLoanScheduleRepository creates a new loan schedule repository
func NewLoanScheduleRepository(db *gorm.DB) *LoanScheduleRepository {
	return &LoanScheduleRepository{db: db}
}

// CreateBatch inserts a loan's full repayment schedule in one go
func (r *LoanScheduleRepository) CreateBatch(ctx context.Context, loanID uuid.UUID, entries []*entities.LoanScheduleEntry) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([]models.LoanScheduleEntry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, models.LoanScheduleEntry{
			ID:               utils.GenerateUUIDv7(),
			LoanID:           loanID,
			Number:           e.Number,
			DueDate:          e.DueDate,
			Amount:           e.Amount,
			PrincipalPortion: e.PrincipalPortion,
			InterestPortion:  e.InterestPortion,
			RemainingBalance: e.RemainingBalance,
			Paid:             e.Paid,
		})
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(&rows).Error
}

// GetByLoanID lists a loan's schedule in installment order
func (r *LoanScheduleRepository) GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*entities.LoanScheduleEntry, error) {
	var rows []models.LoanScheduleEntry
	if err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]*entities.LoanScheduleEntry, 0, len(rows))
	for i := range rows {
		m := rows[i]
		entries = append(entries, &entities.LoanScheduleEntry{
			Number:           m.Number,
			DueDate:          m.DueDate,
			Amount:           m.Amount,
			PrincipalPortion: m.PrincipalPortion,
			InterestPortion:  m.InterestPortion,
			RemainingBalance: m.RemainingBalance,
			Paid:             m.Paid,
		})
	}
	return entries, nil
}

// MarkPaidThrough marks all installments up to and including number as
// paid. Already-paid installments are left untouched, so zero affected
// rows is not an error.
func (r *LoanScheduleRepository) MarkPaidThrough(ctx context.Context, loanID uuid.UUID, number int) error {
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.LoanScheduleEntry{}).
		Where("loan_id = ? AND number <= ? AND paid = ?", loanID, number, false).
		Update("paid", true).Error
}
