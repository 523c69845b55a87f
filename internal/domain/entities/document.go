package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DocumentType enumerates accepted KYC document kinds
type DocumentType string

const (
	DocumentTypeNIDACard       DocumentType = "nida_card"
	DocumentTypeVotersID       DocumentType = "voters_id"
	DocumentTypePassport       DocumentType = "passport"
	DocumentTypeDrivingLicense DocumentType = "driving_license"
	DocumentTypePayslip        DocumentType = "payslip"
	DocumentTypeBankStatement  DocumentType = "bank_statement"
	DocumentTypeUtilityBill    DocumentType = "utility_bill"
	DocumentTypeBusinessLicense DocumentType = "business_license"
)

// DocumentStatus is the review state of an uploaded document
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// Document represents a customer KYC document entity
type Document struct {
	ID              uuid.UUID      `json:"id"`
	CustomerID      uuid.UUID      `json:"customerId"`
	DocumentType    DocumentType   `json:"documentType"`
	FileName        string         `json:"fileName"`
	FilePath        string         `json:"-"`
	FileSize        int64          `json:"fileSize"`
	ContentType     string         `json:"contentType"`
	Status          DocumentStatus `json:"status"`
	RejectionReason null.String    `json:"rejectionReason,omitempty"`
	ReviewedBy      *uuid.UUID     `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time     `json:"reviewedAt,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       *time.Time     `json:"-"`
}

// UploadDocumentInput represents metadata for a document upload
type UploadDocumentInput struct {
	DocumentType DocumentType `json:"documentType" binding:"required"`
	FileName     string       `json:"fileName" binding:"required,max=255"`
	FileSize     int64        `json:"fileSize" binding:"required,gt=0"`
	ContentType  string       `json:"contentType" binding:"required"`
}

// ReviewDocumentInput approves or rejects a document
type ReviewDocumentInput struct {
	Status          DocumentStatus `json:"status" binding:"required"`
	RejectionReason string         `json:"rejectionReason,omitempty"`
}
