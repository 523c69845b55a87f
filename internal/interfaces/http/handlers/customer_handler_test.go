package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"tujenge.backend/internal/domain/entities"
	"tujenge.backend/internal/usecases"
)

func newCustomerTestRouter(customerRepo *customerRepoStub, documentRepo *documentRepoStub, loanRepo *loanRepoStub) (*gin.Engine, *CustomerHandler) {
	gin.SetMode(gin.TestMode)
	auditUC := usecases.NewAuditUsecase(&auditRepoStub{})
	uc := usecases.NewCustomerUsecase(customerRepo, documentRepo, loanRepo, auditUC, uowStub{},
		2, decimal.NewFromInt(10_000_000), time.Hour)
	h := NewCustomerHandler(uc)

	r := gin.New()
	r.POST("/customers", h.Create)
	r.GET("/customers", h.List)
	r.GET("/customers/:id", h.Get)
	r.GET("/customers/:id/eligibility", h.Eligibility)
	r.DELETE("/customers/:id", h.Delete)
	return r, h
}

func TestCustomerHandler_Create_Success(t *testing.T) {
	r, _ := newCustomerTestRouter(newCustomerRepoStub(), newDocumentRepoStub(), newLoanRepoStub())

	body := []byte(`{
		"firstName": "Amina",
		"lastName": "Juma",
		"phoneNumber": "0712345678",
		"nidaNumber": "19900101123450000123",
		"dateOfBirth": "1990-01-01",
		"gender": "female",
		"region": "Dar es Salaam",
		"district": "Ilala",
		"monthlyIncome": 800000
	}`)
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	var created entities.Customer
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal created customer: %v", err)
	}
	if !strings.HasPrefix(created.CustomerNumber, "CUS-") {
		t.Fatalf("unexpected customer number: %s", created.CustomerNumber)
	}
	if created.PhoneNumber != "+255712345678" {
		t.Fatalf("phone not normalized: %s", created.PhoneNumber)
	}
}

func TestCustomerHandler_Create_ValidationBranches(t *testing.T) {
	r, _ := newCustomerTestRouter(newCustomerRepoStub(), newDocumentRepoStub(), newLoanRepoStub())

	// malformed JSON
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed payload, got %d", w.Code)
	}

	// invalid phone number
	body := []byte(`{
		"firstName": "Amina",
		"lastName": "Juma",
		"phoneNumber": "0512345678",
		"nidaNumber": "19900101123450000123",
		"dateOfBirth": "1990-01-01",
		"gender": "female",
		"region": "Dar es Salaam",
		"district": "Ilala"
	}`)
	req = httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid phone, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestCustomerHandler_Get_NotFoundAndBadID(t *testing.T) {
	r, _ := newCustomerTestRouter(newCustomerRepoStub(), newDocumentRepoStub(), newLoanRepoStub())

	req := httptest.NewRequest(http.MethodGet, "/customers/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid id, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/customers/"+uuid.New().String(), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown customer, got %d", w.Code)
	}
}

func TestCustomerHandler_Get_ReturnsDerivedProfileFields(t *testing.T) {
	customerRepo := newCustomerRepoStub()
	id := uuid.New()
	customerRepo.byID[id] = &entities.Customer{
		ID:          id,
		FirstName:   "Amina",
		MiddleName:  null.StringFrom("Hassan"),
		LastName:    "Juma",
		PhoneNumber: "+255712345678",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		KYCStatus:   entities.KYCStatusVerified,
		Status:      entities.CustomerStatusActive,
	}
	r, _ := newCustomerTestRouter(customerRepo, newDocumentRepoStub(), newLoanRepoStub())

	req := httptest.NewRequest(http.MethodGet, "/customers/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	var profile struct {
		FirstName    string `json:"firstName"`
		FullName     string `json:"fullName"`
		Age          int    `json:"age"`
		CanApplyLoan bool   `json:"canApplyLoan"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("unmarshal profile: %v", err)
	}
	if profile.FirstName != "Amina" {
		t.Fatalf("expected embedded customer fields, got %+v", profile)
	}
	if profile.FullName != "Amina Hassan Juma" {
		t.Fatalf("unexpected full name: %s", profile.FullName)
	}
	if profile.Age < 18 {
		t.Fatalf("unexpected age: %d", profile.Age)
	}
	if !profile.CanApplyLoan {
		t.Fatal("expected verified active customer to pass the loan gate")
	}
}

func TestCustomerHandler_Eligibility_ReportsReasons(t *testing.T) {
	customerRepo := newCustomerRepoStub()
	id := uuid.New()
	customerRepo.byID[id] = &entities.Customer{
		ID:          id,
		FirstName:   "Amina",
		LastName:    "Juma",
		PhoneNumber: "+255712345678",
		KYCStatus:   entities.KYCStatusPending,
		Status:      entities.CustomerStatusActive,
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	r, _ := newCustomerTestRouter(customerRepo, newDocumentRepoStub(), newLoanRepoStub())

	req := httptest.NewRequest(http.MethodGet, "/customers/"+id.String()+"/eligibility", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	var eligibility entities.LoanEligibility
	if err := json.Unmarshal(w.Body.Bytes(), &eligibility); err != nil {
		t.Fatalf("unmarshal eligibility: %v", err)
	}
	if eligibility.Eligible {
		t.Fatal("expected customer with pending KYC to be ineligible")
	}
	if len(eligibility.Reasons) == 0 {
		t.Fatal("expected reasons for ineligibility")
	}
}

func TestCustomerHandler_List_Paginated(t *testing.T) {
	customerRepo := newCustomerRepoStub()
	id := uuid.New()
	customerRepo.byID[id] = &entities.Customer{ID: id, FirstName: "Amina", LastName: "Juma"}
	r, _ := newCustomerTestRouter(customerRepo, newDocumentRepoStub(), newLoanRepoStub())

	req := httptest.NewRequest(http.MethodGet, "/customers?limit=10&offset=0", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var page struct {
		Items []entities.Customer `json:"items"`
		Total int                 `json:"total"`
		Limit int                 `json:"limit"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("unmarshal page: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Limit != 10 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestCustomerHandler_Delete_BlockedByOpenLoans(t *testing.T) {
	customerRepo := newCustomerRepoStub()
	id := uuid.New()
	customerRepo.byID[id] = &entities.Customer{ID: id, FirstName: "Amina", LastName: "Juma", Status: entities.CustomerStatusActive}
	loanRepo := newLoanRepoStub()
	loanRepo.open = 1
	r, _ := newCustomerTestRouter(customerRepo, newDocumentRepoStub(), loanRepo)

	req := httptest.NewRequest(http.MethodDelete, "/customers/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for customer with open loans, got %d body=%s", w.Code, w.Body.String())
	}
}
