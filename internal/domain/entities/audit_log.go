package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AuditAction names the operation an actor performed
type AuditAction string

const (
	AuditActionCreate   AuditAction = "create"
	AuditActionUpdate   AuditAction = "update"
	AuditActionDelete   AuditAction = "delete"
	AuditActionApprove  AuditAction = "approve"
	AuditActionReject   AuditAction = "reject"
	AuditActionDisburse AuditAction = "disburse"
	AuditActionRepay    AuditAction = "repay"
	AuditActionReverse  AuditAction = "reverse"
	AuditActionVerify   AuditAction = "verify"
	AuditActionLogin    AuditAction = "login"
)

// AuditLog is an append-only record of a state-changing operation
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	ActorID      *uuid.UUID  `json:"actorId,omitempty"`
	ActorEmail   null.String `json:"actorEmail,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resourceType"`
	ResourceID   null.String `json:"resourceId,omitempty"`
	Details      null.String `json:"details,omitempty"`
	IPAddress    null.String `json:"ipAddress,omitempty"`
	RequestID    null.String `json:"requestId,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// AuditFilter narrows audit-log listings
type AuditFilter struct {
	ActorID      *uuid.UUID
	Action       AuditAction
	ResourceType string
	ResourceID   string
	From         *time.Time
	To           *time.Time
}
