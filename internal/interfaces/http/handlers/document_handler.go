package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/interfaces/http/response"
	"tujenge.backend/internal/usecases"
)

// DocumentHandler handles KYC document endpoints
type DocumentHandler struct {
	documentUsecase *usecases.DocumentUsecase
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentUsecase *usecases.DocumentUsecase) *DocumentHandler {
	return &DocumentHandler{documentUsecase: documentUsecase}
}

// Upload registers a document for a customer
// POST /api/v1/customers/:id/documents
func (h *DocumentHandler) Upload(c *gin.Context) {
	customerID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UploadDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	doc, err := h.documentUsecase.Upload(c.Request.Context(), actorFrom(c), customerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, doc)
}

// ListByCustomer lists a customer's documents
// GET /api/v1/customers/:id/documents
func (h *DocumentHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	docs, err := h.documentUsecase.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": docs})
}

// Get returns a document by ID
// GET /api/v1/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	doc, err := h.documentUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, doc)
}

// Review approves or rejects a pending document
// POST /api/v1/documents/:id/review
func (h *DocumentHandler) Review(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.ReviewDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	doc, err := h.documentUsecase.Review(c.Request.Context(), actorFrom(c), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, doc)
}

// Delete soft deletes a document
// DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.documentUsecase.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Document deleted"})
}
