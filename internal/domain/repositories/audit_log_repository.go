package repositories

import (
	"context"

	"tujenge.backend/internal/domain/entities"
)

// AuditLogRepository defines append-only audit trail operations
type AuditLogRepository interface {
	Create(ctx context.Context, log *entities.AuditLog) error
	List(ctx context.Context, filter entities.AuditFilter, limit, offset int) ([]*entities.AuditLog, int, error)
}
