package repositories

import (
	"context"

	"github.com/google/uuid"
	"tujenge.backend/internal/domain/entities"
)

// CustomerRepository defines customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entities.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
	GetByCustomerNumber(ctx context.Context, number string) (*entities.Customer, error)
	GetByPhoneNumber(ctx context.Context, phone string) (*entities.Customer, error)
	GetByNIDANumber(ctx context.Context, nida string) (*entities.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entities.Customer, error)
	Update(ctx context.Context, customer *entities.Customer) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter entities.CustomerFilter, limit, offset int) ([]*entities.Customer, int, error)
	CountCreatedInYear(ctx context.Context, year int) (int64, error)
	Analytics(ctx context.Context) (*entities.CustomerAnalytics, error)
}
