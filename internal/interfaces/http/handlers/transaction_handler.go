package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/interfaces/http/response"
	"tujenge.backend/internal/usecases"
)

// TransactionHandler handles ledger endpoints
type TransactionHandler struct {
	transactionUsecase *usecases.TransactionUsecase
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionUsecase *usecases.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{transactionUsecase: transactionUsecase}
}

func transactionFilterFrom(c *gin.Context) (entities.TransactionFilter, error) {
	filter := entities.TransactionFilter{
		Type:    entities.TransactionType(c.Query("type")),
		Status:  entities.TransactionStatus(c.Query("status")),
		Channel: entities.PaymentChannel(c.Query("channel")),
	}
	if raw := c.Query("loanId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, domainerrors.BadRequest("INVALID_ID", "invalid loanId filter")
		}
		filter.LoanID = &id
	}
	if raw := c.Query("customerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, domainerrors.BadRequest("INVALID_ID", "invalid customerId filter")
		}
		filter.CustomerID = &id
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, domainerrors.BadRequest("INVALID_DATE", "from must be RFC 3339")
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, domainerrors.BadRequest("INVALID_DATE", "to must be RFC 3339")
		}
		filter.To = &t
	}
	return filter, nil
}

// List returns transactions matching the filter
// GET /api/v1/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	filter, err := transactionFilterFrom(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	limit, offset := pagination(c)
	transactions, total, err := h.transactionUsecase.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, transactions, total, limit, offset)
}

// Get returns a transaction by ID
// GET /api/v1/transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	tx, err := h.transactionUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, tx)
}

// GetByReference returns a transaction by reference
// GET /api/v1/transactions/reference/:reference
func (h *TransactionHandler) GetByReference(c *gin.Context) {
	tx, err := h.transactionUsecase.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, tx)
}

// Summary returns ledger totals for the filter
// GET /api/v1/transactions/summary
func (h *TransactionHandler) Summary(c *gin.Context) {
	filter, err := transactionFilterFrom(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.transactionUsecase.Summary(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// Reverse backs out a completed repayment
// POST /api/v1/transactions/:id/reverse
func (h *TransactionHandler) Reverse(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.ReverseTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("VALIDATION_ERROR", err.Error()))
		return
	}

	reversal, err := h.transactionUsecase.Reverse(c.Request.Context(), actorFrom(c), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, reversal)
}
