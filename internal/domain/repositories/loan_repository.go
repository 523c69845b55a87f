package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"tujenge.backend/internal/domain/entities"
)

// LoanRepository defines loan account data operations
type LoanRepository interface {
	Create(ctx context.Context, loan *entities.Loan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Loan, error)
	GetByLoanNumber(ctx context.Context, number string) (*entities.Loan, error)
	Update(ctx context.Context, loan *entities.Loan) error
	List(ctx context.Context, filter entities.LoanFilter, limit, offset int) ([]*entities.Loan, int, error)
	CountOpenByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	CountCreatedInYear(ctx context.Context, year int) (int64, error)
	ListDueBefore(ctx context.Context, cutoff time.Time, statuses []entities.LoanStatus) ([]*entities.Loan, error)
	ListStaleApplications(ctx context.Context, appliedBefore time.Time) ([]*entities.Loan, error)
	Analytics(ctx context.Context) (*entities.LoanAnalytics, error)
}

// LoanScheduleRepository defines repayment schedule data operations
type LoanScheduleRepository interface {
	CreateBatch(ctx context.Context, loanID uuid.UUID, entries []*entities.LoanScheduleEntry) error
	GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*entities.LoanScheduleEntry, error)
	MarkPaidThrough(ctx context.Context, loanID uuid.UUID, number int) error
}
