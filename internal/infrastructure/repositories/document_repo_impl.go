package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/infrastructure/models"
)

// DocumentRepository implements KYC document data operations
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document record
func (r *DocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	m := &models.Document{
		ID:           doc.ID,
		CustomerID:   doc.CustomerID,
		DocumentType: string(doc.DocumentType),
		FileName:     doc.FileName,
		FilePath:     doc.FilePath,
		FileSize:     doc.FileSize,
		ContentType:  doc.ContentType,
		Status:       string(doc.Status),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	doc.ID = m.ID
	return nil
}

// GetByID gets a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	var m models.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return documentToEntity(&m), nil
}

// GetByCustomerID lists all documents belonging to a customer
func (r *DocumentRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entities.Document, error) {
	var docModels []models.Document
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&docModels).Error; err != nil {
		return nil, err
	}

	docs := make([]*entities.Document, 0, len(docModels))
	for i := range docModels {
		docs = append(docs, documentToEntity(&docModels[i]))
	}
	return docs, nil
}

// Update persists review state changes
func (r *DocumentRepository) Update(ctx context.Context, doc *entities.Document) error {
	updates := map[string]interface{}{
		"status":           string(doc.Status),
		"rejection_reason": doc.RejectionReason.Ptr(),
		"reviewed_by":      doc.ReviewedBy,
		"reviewed_at":      doc.ReviewedAt,
		"updated_at":       time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Document{}).Where("id = ?", doc.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a document
func (r *DocumentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Document{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountApprovedByCustomer counts a customer's approved documents
func (r *DocumentRepository) CountApprovedByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Document{}).
		Where("customer_id = ? AND status = ?", customerID, string(entities.DocumentStatusApproved)).
		Count(&count).Error
	return count, err
}

func documentToEntity(m *models.Document) *entities.Document {
	return &entities.Document{
		ID:              m.ID,
		CustomerID:      m.CustomerID,
		DocumentType:    entities.DocumentType(m.DocumentType),
		FileName:        m.FileName,
		FilePath:        m.FilePath,
		FileSize:        m.FileSize,
		ContentType:     m.ContentType,
		Status:          entities.DocumentStatus(m.Status),
		RejectionReason: null.StringFromPtr(m.RejectionReason),
		ReviewedBy:      m.ReviewedBy,
		ReviewedAt:      m.ReviewedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
