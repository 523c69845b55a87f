package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"tujenge.backend/internal/domain/entities"
	"tujenge.backend/internal/interfaces/http/middleware"
	"tujenge.backend/internal/usecases"
)

func newTransactionTestRouter(txRepo *txRepoStub, loanRepo *loanRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auditUC := usecases.NewAuditUsecase(&auditRepoStub{})
	h := NewTransactionHandler(usecases.NewTransactionUsecase(txRepo, loanRepo, auditUC, uowStub{}))

	withStaff := func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uuid.New())
		c.Next()
	}

	r := gin.New()
	r.GET("/transactions", withStaff, h.List)
	r.GET("/transactions/summary", withStaff, h.Summary)
	r.GET("/transactions/reference/:reference", withStaff, h.GetByReference)
	r.GET("/transactions/:id", withStaff, h.Get)
	r.POST("/transactions/:id/reverse", withStaff, h.Reverse)
	return r
}

func TestTransactionHandler_GetByReference(t *testing.T) {
	txRepo := newTxRepoStub()
	txID := uuid.New()
	txRepo.byID[txID] = &entities.Transaction{
		ID:        txID,
		Reference: "TXN-A1B2C3",
		Type:      entities.TransactionTypeRepayment,
		Status:    entities.TransactionStatusCompleted,
	}
	r := newTransactionTestRouter(txRepo, newLoanRepoStub())

	req := httptest.NewRequest(http.MethodGet, "/transactions/reference/TXN-A1B2C3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/transactions/reference/TXN-MISSING", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTransactionHandler_List_BadFilters(t *testing.T) {
	r := newTransactionTestRouter(newTxRepoStub(), newLoanRepoStub())

	req := httptest.NewRequest(http.MethodGet, "/transactions?loanId=not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad loanId, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/transactions?from=yesterday", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", w.Code)
	}
}

func TestTransactionHandler_Reverse_RestoresLoanBalances(t *testing.T) {
	loanRepo := newLoanRepoStub()
	loanID := uuid.New()
	loanRepo.byID[loanID] = &entities.Loan{
		ID:                   loanID,
		Status:               entities.LoanStatusActive,
		OutstandingPrincipal: decimal.NewFromInt(920_000),
		TotalPaid:            decimal.NewFromInt(100_000),
	}

	txRepo := newTxRepoStub()
	txID := uuid.New()
	txRepo.byID[txID] = &entities.Transaction{
		ID:            txID,
		Reference:     "TXN-A1B2C3",
		LoanID:        loanID,
		Type:          entities.TransactionTypeRepayment,
		Status:        entities.TransactionStatusCompleted,
		Amount:        decimal.NewFromInt(100_000),
		PrincipalPaid: decimal.NewFromInt(80_000),
		InterestPaid:  decimal.NewFromInt(15_000),
		PenaltyPaid:   decimal.NewFromInt(5_000),
	}
	r := newTransactionTestRouter(txRepo, loanRepo)

	req := httptest.NewRequest(http.MethodPost, "/transactions/"+txID.String()+"/reverse",
		strings.NewReader(`{"reason":"teller keyed the wrong account"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	var reversal entities.Transaction
	if err := json.Unmarshal(w.Body.Bytes(), &reversal); err != nil {
		t.Fatalf("unmarshal reversal: %v", err)
	}
	if reversal.Type != entities.TransactionTypeReversal {
		t.Fatalf("expected reversal type, got %s", reversal.Type)
	}

	loan := loanRepo.byID[loanID]
	if !loan.OutstandingPrincipal.Equal(decimal.NewFromInt(1_000_000)) {
		t.Fatalf("principal not restored: %s", loan.OutstandingPrincipal)
	}
	if txRepo.byID[txID].Status != entities.TransactionStatusReversed {
		t.Fatalf("original not marked reversed: %s", txRepo.byID[txID].Status)
	}
}

func TestTransactionHandler_Reverse_ReasonRequired(t *testing.T) {
	r := newTransactionTestRouter(newTxRepoStub(), newLoanRepoStub())

	req := httptest.NewRequest(http.MethodPost, "/transactions/"+uuid.New().String()+"/reverse",
		strings.NewReader(`{"reason":""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty reason, got %d", w.Code)
	}
}

func TestTransactionHandler_Summary(t *testing.T) {
	txRepo := newTxRepoStub()
	txID := uuid.New()
	txRepo.byID[txID] = &entities.Transaction{ID: txID, Reference: "TXN-A1B2C3"}
	r := newTransactionTestRouter(txRepo, newLoanRepoStub())

	req := httptest.NewRequest(http.MethodGet, "/transactions/summary", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var summary entities.TransactionSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if summary.Count != 1 {
		t.Fatalf("unexpected summary count: %d", summary.Count)
	}
}
