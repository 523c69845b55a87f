package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/domain/repositories"
	"tujenge.backend/pkg/utils"
)

// TransactionUsecase reads the ledger and handles reversals
type TransactionUsecase struct {
	txRepo   repositories.TransactionRepository
	loanRepo repositories.LoanRepository
	auditUC  *AuditUsecase
	uow      repositories.UnitOfWork
}

// NewTransactionUsecase creates a new transaction usecase
func NewTransactionUsecase(
	txRepo repositories.TransactionRepository,
	loanRepo repositories.LoanRepository,
	auditUC *AuditUsecase,
	uow repositories.UnitOfWork,
) *TransactionUsecase {
	return &TransactionUsecase{txRepo: txRepo, loanRepo: loanRepo, auditUC: auditUC, uow: uow}
}

// GetByID gets a transaction by ID
func (u *TransactionUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	return u.txRepo.GetByID(ctx, id)
}

// GetByReference gets a transaction by its reference
func (u *TransactionUsecase) GetByReference(ctx context.Context, reference string) (*entities.Transaction, error) {
	return u.txRepo.GetByReference(ctx, reference)
}

// List lists transactions matching the filter
func (u *TransactionUsecase) List(ctx context.Context, filter entities.TransactionFilter, limit, offset int) ([]*entities.Transaction, int, error) {
	return u.txRepo.List(ctx, filter, limit, offset)
}

// Summary aggregates transaction volumes for the filter
func (u *TransactionUsecase) Summary(ctx context.Context, filter entities.TransactionFilter) (*entities.TransactionSummary, error) {
	return u.txRepo.Summary(ctx, filter)
}

// Reverse backs out a completed repayment. A compensating ledger entry
// is written and the amounts flow back onto the loan balances.
func (u *TransactionUsecase) Reverse(ctx context.Context, actor Actor, id uuid.UUID, input *entities.ReverseTransactionInput) (*entities.Transaction, error) {
	original, err := u.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if original.Status != entities.TransactionStatusCompleted {
		return nil, domainerrors.Conflict("TRANSACTION_NOT_REVERSIBLE", "only completed transactions can be reversed")
	}
	if original.Type != entities.TransactionTypeRepayment {
		return nil, domainerrors.Conflict("TRANSACTION_NOT_REVERSIBLE", "only repayments can be reversed")
	}
	if original.ReversedBy != nil {
		return nil, domainerrors.Conflict("TRANSACTION_ALREADY_REVERSED", "transaction has already been reversed")
	}
	if input.Reason == "" {
		return nil, domainerrors.BadRequest("REASON_REQUIRED", "reversal requires a reason")
	}

	loan, err := u.loanRepo.GetByID(ctx, original.LoanID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reversal := &entities.Transaction{
		ID:            utils.GenerateUUIDv7(),
		Reference:     newTransactionReference(),
		LoanID:        original.LoanID,
		CustomerID:    original.CustomerID,
		Type:          entities.TransactionTypeReversal,
		Amount:        original.Amount,
		Currency:      original.Currency,
		Channel:       original.Channel,
		Status:        entities.TransactionStatusCompleted,
		PrincipalPaid: original.PrincipalPaid.Neg(),
		InterestPaid:  original.InterestPaid.Neg(),
		PenaltyPaid:   original.PenaltyPaid.Neg(),
		FeesPaid:      original.FeesPaid.Neg(),
		ReversalOf:    &original.ID,
		RecordedBy:    actor.ID,
		Narration:     null.StringFrom(input.Reason),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	original.Status = entities.TransactionStatusReversed
	original.ReversedBy = &reversal.ID
	original.UpdatedAt = now

	// restore the balances the original payment had reduced
	loan.OutstandingPrincipal = loan.OutstandingPrincipal.Add(original.PrincipalPaid)
	loan.AccruedInterest = loan.AccruedInterest.Add(original.InterestPaid)
	loan.PenaltyBalance = loan.PenaltyBalance.Add(original.PenaltyPaid)
	loan.TotalPaid = loan.TotalPaid.Sub(original.Amount)
	loan.UpdatedAt = now

	// a reversed payoff reopens the account
	if loan.Status == entities.LoanStatusCompleted && loan.TotalOutstanding().IsPositive() {
		loan.Status = entities.LoanStatusActive
		loan.ClosedAt = nil
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.txRepo.Create(txCtx, reversal); err != nil {
			return err
		}
		if err := u.txRepo.Update(txCtx, original); err != nil {
			return err
		}
		return u.loanRepo.Update(txCtx, loan)
	})
	if err != nil {
		return nil, err
	}

	u.auditUC.Record(ctx, actor, entities.AuditActionReverse, "transaction", original.ID.String(), map[string]string{
		"reversal": reversal.Reference,
		"reason":   input.Reason,
	})
	return reversal, nil
}
