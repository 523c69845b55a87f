package repositories

import (
	"context"

	"github.com/google/uuid"
	"tujenge.backend/internal/domain/entities"
)

// LoanProductRepository defines loan product data operations
type LoanProductRepository interface {
	Create(ctx context.Context, product *entities.LoanProduct) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.LoanProduct, error)
	GetByName(ctx context.Context, name string) (*entities.LoanProduct, error)
	GetByCode(ctx context.Context, code string) (*entities.LoanProduct, error)
	Update(ctx context.Context, product *entities.LoanProduct) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]*entities.LoanProduct, error)
}
