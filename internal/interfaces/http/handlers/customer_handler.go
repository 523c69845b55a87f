package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/interfaces/http/response"
	"tujenge.backend/internal/usecases"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	customerUsecase *usecases.CustomerUsecase
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerUsecase *usecases.CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{customerUsecase: customerUsecase}
}

// Create registers a customer
// POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var input entities.CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	customer, err := h.customerUsecase.Register(c.Request.Context(), actorFrom(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, customer)
}

// Get returns a customer by ID
// GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	customer, err := h.customerUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, customer.Profile())
}

// GetByNumber returns a customer by customer number
// GET /api/v1/customers/number/:number
func (h *CustomerHandler) GetByNumber(c *gin.Context) {
	customer, err := h.customerUsecase.GetByCustomerNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, customer.Profile())
}

// List returns customers matching the filter
// GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	filter := entities.CustomerFilter{
		Region:    c.Query("region"),
		KYCStatus: entities.KYCStatus(c.Query("kycStatus")),
		Status:    entities.CustomerStatus(c.Query("status")),
		Search:    c.Query("search"),
	}

	customers, total, err := h.customerUsecase.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, customers, total, limit, offset)
}

// Update applies partial updates to a customer
// PATCH /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	customer, err := h.customerUsecase.Update(c.Request.Context(), actorFrom(c), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, customer)
}

// Delete soft deletes a customer
// DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.customerUsecase.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Customer deleted"})
}

// VerifyNIDA runs the national-ID verification for a customer
// POST /api/v1/customers/:id/verify-nida
func (h *CustomerHandler) VerifyNIDA(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.customerUsecase.VerifyNIDA(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Eligibility evaluates whether a customer may take a new loan
// GET /api/v1/customers/:id/eligibility
func (h *CustomerHandler) Eligibility(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := h.customerUsecase.CheckLoanEligibility(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, out)
}

// Analytics returns customer portfolio statistics
// GET /api/v1/customers/analytics
func (h *CustomerHandler) Analytics(c *gin.Context) {
	out, err := h.customerUsecase.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, out)
}
