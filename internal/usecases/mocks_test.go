package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"tujenge.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(context.Context) error) error {
	m.Called(ctx, fn)
	return fn(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// Mock CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *entities.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByCustomerNumber(ctx context.Context, number string) (*entities.Customer, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByPhoneNumber(ctx context.Context, phone string) (*entities.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByNIDANumber(ctx context.Context, nida string) (*entities.Customer, error) {
	args := m.Called(ctx, nida)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email string) (*entities.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *entities.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCustomerRepository) List(ctx context.Context, filter entities.CustomerFilter, limit, offset int) ([]*entities.Customer, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Customer), args.Int(1), args.Error(2)
}

func (m *MockCustomerRepository) CountCreatedInYear(ctx context.Context, year int) (int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Analytics(ctx context.Context) (*entities.CustomerAnalytics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CustomerAnalytics), args.Error(1)
}

// Mock DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Document), args.Error(1)
}

func (m *MockDocumentRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entities.Document, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Document), args.Error(1)
}

func (m *MockDocumentRepository) Update(ctx context.Context, doc *entities.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDocumentRepository) CountApprovedByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock LoanProductRepository
type MockLoanProductRepository struct {
	mock.Mock
}

func (m *MockLoanProductRepository) Create(ctx context.Context, product *entities.LoanProduct) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockLoanProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.LoanProduct, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LoanProduct), args.Error(1)
}

func (m *MockLoanProductRepository) GetByName(ctx context.Context, name string) (*entities.LoanProduct, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LoanProduct), args.Error(1)
}

func (m *MockLoanProductRepository) GetByCode(ctx context.Context, code string) (*entities.LoanProduct, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LoanProduct), args.Error(1)
}

func (m *MockLoanProductRepository) Update(ctx context.Context, product *entities.LoanProduct) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockLoanProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLoanProductRepository) List(ctx context.Context, activeOnly bool) ([]*entities.LoanProduct, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LoanProduct), args.Error(1)
}

// Mock LoanRepository
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *entities.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Loan), args.Error(1)
}

func (m *MockLoanRepository) GetByLoanNumber(ctx context.Context, number string) (*entities.Loan, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Loan), args.Error(1)
}

func (m *MockLoanRepository) Update(ctx context.Context, loan *entities.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *MockLoanRepository) List(ctx context.Context, filter entities.LoanFilter, limit, offset int) ([]*entities.Loan, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Loan), args.Int(1), args.Error(2)
}

func (m *MockLoanRepository) CountOpenByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepository) CountCreatedInYear(ctx context.Context, year int) (int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepository) ListDueBefore(ctx context.Context, cutoff time.Time, statuses []entities.LoanStatus) ([]*entities.Loan, error) {
	args := m.Called(ctx, cutoff, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListStaleApplications(ctx context.Context, appliedBefore time.Time) ([]*entities.Loan, error) {
	args := m.Called(ctx, appliedBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Loan), args.Error(1)
}

func (m *MockLoanRepository) Analytics(ctx context.Context) (*entities.LoanAnalytics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LoanAnalytics), args.Error(1)
}

// Mock LoanScheduleRepository
type MockLoanScheduleRepository struct {
	mock.Mock
}

func (m *MockLoanScheduleRepository) CreateBatch(ctx context.Context, loanID uuid.UUID, entries []*entities.LoanScheduleEntry) error {
	return m.Called(ctx, loanID, entries).Error(0)
}

func (m *MockLoanScheduleRepository) GetByLoanID(ctx context.Context, loanID uuid.UUID) ([]*entities.LoanScheduleEntry, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LoanScheduleEntry), args.Error(1)
}

func (m *MockLoanScheduleRepository) MarkPaidThrough(ctx context.Context, loanID uuid.UUID, number int) error {
	return m.Called(ctx, loanID, number).Error(0)
}

// Mock TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, reference string) (*entities.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *entities.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) List(ctx context.Context, filter entities.TransactionFilter, limit, offset int) ([]*entities.Transaction, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Transaction), args.Int(1), args.Error(2)
}

func (m *MockTransactionRepository) Summary(ctx context.Context, filter entities.TransactionFilter) (*entities.TransactionSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransactionSummary), args.Error(1)
}

// Mock AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, log *entities.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockAuditLogRepository) List(ctx context.Context, filter entities.AuditFilter, limit, offset int) ([]*entities.AuditLog, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.AuditLog), args.Int(1), args.Error(2)
}
