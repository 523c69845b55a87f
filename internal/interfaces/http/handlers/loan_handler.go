package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/interfaces/http/response"
	"tujenge.backend/internal/usecases"
)

// LoanHandler handles loan lifecycle endpoints
type LoanHandler struct {
	loanUsecase *usecases.LoanUsecase
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanUsecase *usecases.LoanUsecase) *LoanHandler {
	return &LoanHandler{loanUsecase: loanUsecase}
}

// Apply submits a loan application
// POST /api/v1/loans
func (h *LoanHandler) Apply(c *gin.Context) {
	var input entities.ApplyLoanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	loan, err := h.loanUsecase.Apply(c.Request.Context(), actorFrom(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, loan)
}

// Get returns a loan by ID
// GET /api/v1/loans/:id
func (h *LoanHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	loan, err := h.loanUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// GetByNumber returns a loan by loan number
// GET /api/v1/loans/number/:number
func (h *LoanHandler) GetByNumber(c *gin.Context) {
	loan, err := h.loanUsecase.GetByLoanNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// List returns loans matching the filter
// GET /api/v1/loans
func (h *LoanHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	filter := entities.LoanFilter{
		Status:  entities.LoanStatus(c.Query("status")),
		Overdue: c.Query("overdue") == "true",
	}
	if raw := c.Query("customerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("INVALID_ID", "invalid customerId filter"))
			return
		}
		filter.CustomerID = &id
	}
	if raw := c.Query("productId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("INVALID_ID", "invalid productId filter"))
			return
		}
		filter.ProductID = &id
	}

	loans, total, err := h.loanUsecase.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, loans, total, limit, offset)
}

// StartReview moves a submitted application into review
// POST /api/v1/loans/:id/review/start
func (h *LoanHandler) StartReview(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	loan, err := h.loanUsecase.StartReview(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// Review approves or rejects a loan under review
// POST /api/v1/loans/:id/review
func (h *LoanHandler) Review(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.ReviewLoanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	loan, err := h.loanUsecase.Review(c.Request.Context(), actorFrom(c), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// Disburse pays out an approved loan
// POST /api/v1/loans/:id/disburse
func (h *LoanHandler) Disburse(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.DisburseLoanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	loan, err := h.loanUsecase.Disburse(c.Request.Context(), actorFrom(c), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan)
}

// Repay records a repayment against a loan
// POST /api/v1/loans/:id/repayments
func (h *LoanHandler) Repay(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.RepayLoanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	payment, err := h.loanUsecase.Repay(c.Request.Context(), actorFrom(c), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, payment)
}

// Schedule returns a loan's repayment schedule
// GET /api/v1/loans/:id/schedule
func (h *LoanHandler) Schedule(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	schedule, err := h.loanUsecase.GetSchedule(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": schedule})
}

// SettlementQuote prices closing a loan today
// GET /api/v1/loans/:id/settlement-quote
func (h *LoanHandler) SettlementQuote(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	quote, err := h.loanUsecase.QuoteEarlySettlement(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, quote)
}

// Settle closes a loan against a settlement quote
// POST /api/v1/loans/:id/settle
func (h *LoanHandler) Settle(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.RepayLoanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	payment, err := h.loanUsecase.SettleEarly(c.Request.Context(), actorFrom(c), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, payment)
}

// Analytics returns loan portfolio statistics
// GET /api/v1/loans/analytics
func (h *LoanHandler) Analytics(c *gin.Context) {
	out, err := h.loanUsecase.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, out)
}
