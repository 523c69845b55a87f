package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/interfaces/http/response"
	"tujenge.backend/internal/usecases"
)

// AuditHandler exposes the audit trail
type AuditHandler struct {
	auditUsecase *usecases.AuditUsecase
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditUsecase *usecases.AuditUsecase) *AuditHandler {
	return &AuditHandler{auditUsecase: auditUsecase}
}

// List returns audit entries matching the filter
// GET /api/v1/audit-logs
func (h *AuditHandler) List(c *gin.Context) {
	filter := entities.AuditFilter{
		Action:       entities.AuditAction(c.Query("action")),
		ResourceType: c.Query("resourceType"),
		ResourceID:   c.Query("resourceId"),
	}
	if raw := c.Query("actorId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("INVALID_ID", "invalid actorId filter"))
			return
		}
		filter.ActorID = &id
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("INVALID_DATE", "from must be RFC 3339"))
			return
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("INVALID_DATE", "to must be RFC 3339"))
			return
		}
		filter.To = &t
	}

	limit, offset := pagination(c)
	entries, total, err := h.auditUsecase.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, entries, total, limit, offset)
}
