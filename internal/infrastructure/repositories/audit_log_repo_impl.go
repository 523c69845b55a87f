package repositories

import (
	"context"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"tujenge.backend/internal/domain/entities"
	"tujenge.backend/internal/infrastructure/models"
)

// AuditLogRepository implements append-only audit trail operations
type AuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create appends an audit record
func (r *AuditLogRepository) Create(ctx context.Context, log *entities.AuditLog) error {
	m := &models.AuditLog{
		ID:           log.ID,
		ActorID:      log.ActorID,
		ActorEmail:   log.ActorEmail.Ptr(),
		Action:       string(log.Action),
		ResourceType: log.ResourceType,
		ResourceID:   log.ResourceID.Ptr(),
		Details:      log.Details.Ptr(),
		IPAddress:    log.IPAddress.Ptr(),
		RequestID:    log.RequestID.Ptr(),
		CreatedAt:    log.CreatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// List lists audit records matching the filter, newest first
func (r *AuditLogRepository) List(ctx context.Context, filter entities.AuditFilter, limit, offset int) ([]*entities.AuditLog, int, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", string(filter.Action))
	}
	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.ResourceID != "" {
		query = query.Where("resource_id = ?", filter.ResourceID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logModels []models.AuditLog
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logModels).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]*entities.AuditLog, 0, len(logModels))
	for i := range logModels {
		m := logModels[i]
		logs = append(logs, &entities.AuditLog{
			ID:           m.ID,
			ActorID:      m.ActorID,
			ActorEmail:   null.StringFromPtr(m.ActorEmail),
			Action:       entities.AuditAction(m.Action),
			ResourceType: m.ResourceType,
			ResourceID:   null.StringFromPtr(m.ResourceID),
			Details:      null.StringFromPtr(m.Details),
			IPAddress:    null.StringFromPtr(m.IPAddress),
			RequestID:    null.StringFromPtr(m.RequestID),
			CreatedAt:    m.CreatedAt,
		})
	}
	return logs, int(total), nil
}
