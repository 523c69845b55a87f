package repositories

import (
	"context"

	"github.com/google/uuid"
	"tujenge.backend/internal/domain/entities"
)

// TransactionRepository defines ledger data operations
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*entities.Transaction, error)
	Update(ctx context.Context, tx *entities.Transaction) error
	List(ctx context.Context, filter entities.TransactionFilter, limit, offset int) ([]*entities.Transaction, int, error)
	Summary(ctx context.Context, filter entities.TransactionFilter) (*entities.TransactionSummary, error)
}
