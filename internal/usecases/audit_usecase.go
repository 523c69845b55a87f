package usecases

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"tujenge.backend/internal/domain/entities"
	"tujenge.backend/internal/domain/repositories"
	"tujenge.backend/pkg/logger"
	"tujenge.backend/pkg/utils"
)

// AuditUsecase records and queries the audit trail
type AuditUsecase struct {
	auditRepo repositories.AuditLogRepository
}

// NewAuditUsecase creates a new audit usecase
func NewAuditUsecase(auditRepo repositories.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{auditRepo: auditRepo}
}

// Actor identifies who performed an audited operation
type Actor struct {
	ID    *uuid.UUID
	Email string
	IP    string
}

// Record appends an audit entry. Audit failures are logged but never
// fail the operation being audited.
func (u *AuditUsecase) Record(ctx context.Context, actor Actor, action entities.AuditAction, resourceType string, resourceID string, details interface{}) {
	entry := &entities.AuditLog{
		ID:           utils.GenerateUUIDv7(),
		ActorID:      actor.ID,
		Action:       action,
		ResourceType: resourceType,
		CreatedAt:    time.Now(),
	}
	if actor.Email != "" {
		entry.ActorEmail = null.StringFrom(actor.Email)
	}
	if actor.IP != "" {
		entry.IPAddress = null.StringFrom(actor.IP)
	}
	if resourceID != "" {
		entry.ResourceID = null.StringFrom(resourceID)
	}
	if reqID, ok := ctx.Value("request_id").(string); ok {
		entry.RequestID = null.StringFrom(reqID)
	}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = null.StringFrom(string(raw))
		}
	}

	if err := u.auditRepo.Create(ctx, entry); err != nil {
		logger.Error(ctx, "failed to record audit entry",
			zap.String("action", string(action)),
			zap.String("resource_type", resourceType),
			zap.Error(err))
	}
}

// List returns audit entries matching the filter
func (u *AuditUsecase) List(ctx context.Context, filter entities.AuditFilter, limit, offset int) ([]*entities.AuditLog, int, error) {
	return u.auditRepo.List(ctx, filter, limit, offset)
}
