package repositories

import (
	"context"

	"github.com/google/uuid"
	"tujenge.backend/internal/domain/entities"
)

// DocumentRepository defines KYC document data operations
type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error)
	GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entities.Document, error)
	Update(ctx context.Context, doc *entities.Document) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	CountApprovedByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}
