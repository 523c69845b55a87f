package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/interfaces/http/response"
	"tujenge.backend/internal/usecases"
)

// LoanProductHandler handles loan product endpoints
type LoanProductHandler struct {
	productUsecase *usecases.LoanProductUsecase
}

// NewLoanProductHandler creates a new loan product handler
func NewLoanProductHandler(productUsecase *usecases.LoanProductUsecase) *LoanProductHandler {
	return &LoanProductHandler{productUsecase: productUsecase}
}

// Create creates a loan product
// POST /api/v1/loan-products
func (h *LoanProductHandler) Create(c *gin.Context) {
	var input entities.CreateLoanProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	product, err := h.productUsecase.Create(c.Request.Context(), actorFrom(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, product)
}

// Get returns a loan product
// GET /api/v1/loan-products/:id
func (h *LoanProductHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// List returns loan products
// GET /api/v1/loan-products
func (h *LoanProductHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	products, err := h.productUsecase.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": products})
}

// Update applies partial updates to a product
// PATCH /api/v1/loan-products/:id
func (h *LoanProductHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateLoanProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	product, err := h.productUsecase.Update(c.Request.Context(), actorFrom(c), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, product)
}

// Delete soft deletes a loan product
// DELETE /api/v1/loan-products/:id
func (h *LoanProductHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.productUsecase.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Product deleted"})
}
