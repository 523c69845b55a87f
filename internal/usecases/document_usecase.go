package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/domain/repositories"
	"tujenge.backend/pkg/utils"
)

// maxDocumentSize caps uploads at 10 MiB
const maxDocumentSize = 10 << 20

var validDocumentTypes = map[entities.DocumentType]bool{
	entities.DocumentTypeNIDACard:        true,
	entities.DocumentTypeVotersID:        true,
	entities.DocumentTypePassport:        true,
	entities.DocumentTypeDrivingLicense:  true,
	entities.DocumentTypePayslip:         true,
	entities.DocumentTypeBankStatement:   true,
	entities.DocumentTypeUtilityBill:     true,
	entities.DocumentTypeBusinessLicense: true,
}

var validContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// DocumentUsecase handles KYC document business logic
type DocumentUsecase struct {
	documentRepo repositories.DocumentRepository
	customerRepo repositories.CustomerRepository
	auditUC      *AuditUsecase
}

// NewDocumentUsecase creates a new document usecase
func NewDocumentUsecase(
	documentRepo repositories.DocumentRepository,
	customerRepo repositories.CustomerRepository,
	auditUC *AuditUsecase,
) *DocumentUsecase {
	return &DocumentUsecase{
		documentRepo: documentRepo,
		customerRepo: customerRepo,
		auditUC:      auditUC,
	}
}

// Upload registers a document for a customer and returns the record
func (u *DocumentUsecase) Upload(ctx context.Context, actor Actor, customerID uuid.UUID, input *entities.UploadDocumentInput) (*entities.Document, error) {
	if !validDocumentTypes[input.DocumentType] {
		return nil, domainerrors.BadRequest("INVALID_DOCUMENT_TYPE", "unknown document type")
	}
	if !validContentTypes[input.ContentType] {
		return nil, domainerrors.BadRequest("INVALID_CONTENT_TYPE", "only JPEG, PNG and PDF documents are accepted")
	}
	if input.FileSize > maxDocumentSize {
		return nil, domainerrors.BadRequest("FILE_TOO_LARGE", "document may not exceed 10 MiB")
	}

	customer, err := u.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &entities.Document{
		ID:           utils.GenerateUUIDv7(),
		CustomerID:   customer.ID,
		DocumentType: input.DocumentType,
		FileName:     input.FileName,
		FilePath:     fmt.Sprintf("documents/%s/%s_%d", customer.ID, input.DocumentType, now.UnixNano()),
		FileSize:     input.FileSize,
		ContentType:  input.ContentType,
		Status:       entities.DocumentStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	u.auditUC.Record(ctx, actor, entities.AuditActionCreate, "document", doc.ID.String(), map[string]string{
		"customerId":   customer.ID.String(),
		"documentType": string(input.DocumentType),
	})
	return doc, nil
}

// GetByID gets a document by ID
func (u *DocumentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	return u.documentRepo.GetByID(ctx, id)
}

// ListByCustomer lists a customer's documents
func (u *DocumentUsecase) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entities.Document, error) {
	return u.documentRepo.GetByCustomerID(ctx, customerID)
}

// Review approves or rejects a pending document
func (u *DocumentUsecase) Review(ctx context.Context, actor Actor, id uuid.UUID, input *entities.ReviewDocumentInput) (*entities.Document, error) {
	if input.Status != entities.DocumentStatusApproved && input.Status != entities.DocumentStatusRejected {
		return nil, domainerrors.BadRequest("INVALID_REVIEW_STATUS", "review must approve or reject")
	}
	if input.Status == entities.DocumentStatusRejected && input.RejectionReason == "" {
		return nil, domainerrors.BadRequest("REASON_REQUIRED", "rejection requires a reason")
	}

	doc, err := u.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != entities.DocumentStatusPending {
		return nil, domainerrors.Conflict("DOCUMENT_ALREADY_REVIEWED", "document has already been reviewed")
	}

	now := time.Now()
	doc.Status = input.Status
	doc.ReviewedBy = actor.ID
	doc.ReviewedAt = &now
	if input.Status == entities.DocumentStatusRejected {
		doc.RejectionReason = null.StringFrom(input.RejectionReason)
	}

	if err := u.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	action := entities.AuditActionApprove
	if input.Status == entities.DocumentStatusRejected {
		action = entities.AuditActionReject
	}
	u.auditUC.Record(ctx, actor, action, "document", doc.ID.String(), map[string]string{
		"status": string(doc.Status),
	})
	return doc, nil
}

// Delete soft deletes a document
func (u *DocumentUsecase) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := u.documentRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	u.auditUC.Record(ctx, actor, entities.AuditActionDelete, "document", id.String(), nil)
	return nil
}
