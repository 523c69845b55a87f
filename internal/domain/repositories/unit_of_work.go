package repositories

import (
	"context"
)

// UnitOfWork groups repository writes into one atomic scope
type UnitOfWork interface {
	// Do runs fn inside a database transaction, rolling back on error
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
