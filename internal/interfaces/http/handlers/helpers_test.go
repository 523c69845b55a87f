package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/pkg/logger"
)

func init() {
	logger.Init("development")
}

type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type customerRepoStub struct {
	byID    map[uuid.UUID]*entities.Customer
	created int64
}

func newCustomerRepoStub() *customerRepoStub {
	return &customerRepoStub{byID: map[uuid.UUID]*entities.Customer{}}
}

func (s *customerRepoStub) Create(_ context.Context, customer *entities.Customer) error {
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}
	s.byID[customer.ID] = customer
	return nil
}

func (s *customerRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Customer, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return c, nil
}

func (s *customerRepoStub) GetByCustomerNumber(_ context.Context, number string) (*entities.Customer, error) {
	for _, c := range s.byID {
		if c.CustomerNumber == number {
			return c, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *customerRepoStub) GetByPhoneNumber(_ context.Context, phone string) (*entities.Customer, error) {
	for _, c := range s.byID {
		if c.PhoneNumber == phone {
			return c, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *customerRepoStub) GetByNIDANumber(_ context.Context, nida string) (*entities.Customer, error) {
	for _, c := range s.byID {
		if c.NIDANumber.Valid && c.NIDANumber.String == nida {
			return c, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *customerRepoStub) GetByEmail(_ context.Context, email string) (*entities.Customer, error) {
	for _, c := range s.byID {
		if c.Email.Valid && c.Email.String == email {
			return c, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *customerRepoStub) Update(_ context.Context, customer *entities.Customer) error {
	s.byID[customer.ID] = customer
	return nil
}

func (s *customerRepoStub) SoftDelete(_ context.Context, id uuid.UUID) error {
	delete(s.byID, id)
	return nil
}

func (s *customerRepoStub) List(context.Context, entities.CustomerFilter, int, int) ([]*entities.Customer, int, error) {
	out := make([]*entities.Customer, 0, len(s.byID))
	for _, c := range s.byID {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (s *customerRepoStub) CountCreatedInYear(context.Context, int) (int64, error) {
	return s.created, nil
}

func (s *customerRepoStub) Analytics(context.Context) (*entities.CustomerAnalytics, error) {
	return &entities.CustomerAnalytics{TotalCustomers: int64(len(s.byID))}, nil
}

type documentRepoStub struct {
	byID     map[uuid.UUID]*entities.Document
	approved int64
}

func newDocumentRepoStub() *documentRepoStub {
	return &documentRepoStub{byID: map[uuid.UUID]*entities.Document{}}
}

func (s *documentRepoStub) Create(_ context.Context, doc *entities.Document) error {
	s.byID[doc.ID] = doc
	return nil
}

func (s *documentRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Document, error) {
	d, ok := s.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return d, nil
}

func (s *documentRepoStub) GetByCustomerID(_ context.Context, customerID uuid.UUID) ([]*entities.Document, error) {
	var out []*entities.Document
	for _, d := range s.byID {
		if d.CustomerID == customerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *documentRepoStub) Update(_ context.Context, doc *entities.Document) error {
	s.byID[doc.ID] = doc
	return nil
}

func (s *documentRepoStub) SoftDelete(_ context.Context, id uuid.UUID) error {
	delete(s.byID, id)
	return nil
}

func (s *documentRepoStub) CountApprovedByCustomer(context.Context, uuid.UUID) (int64, error) {
	return s.approved, nil
}

type userRepoStub struct {
	byID map[uuid.UUID]*entities.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{byID: map[uuid.UUID]*entities.User{}}
}

func (s *userRepoStub) Create(_ context.Context, user *entities.User) error {
	s.byID[user.ID] = user
	return nil
}

func (s *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return u, nil
}

func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) Update(_ context.Context, user *entities.User) error {
	s.byID[user.ID] = user
	return nil
}

func (s *userRepoStub) UpdateLastLogin(context.Context, uuid.UUID) error { return nil }

func (s *userRepoStub) SoftDelete(_ context.Context, id uuid.UUID) error {
	delete(s.byID, id)
	return nil
}

func (s *userRepoStub) List(context.Context, string) ([]*entities.User, error) {
	out := make([]*entities.User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, u)
	}
	return out, nil
}

type productRepoStub struct {
	byID map[uuid.UUID]*entities.LoanProduct
}

func newProductRepoStub() *productRepoStub {
	return &productRepoStub{byID: map[uuid.UUID]*entities.LoanProduct{}}
}

func (s *productRepoStub) Create(_ context.Context, product *entities.LoanProduct) error {
	s.byID[product.ID] = product
	return nil
}

func (s *productRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.LoanProduct, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return p, nil
}

func (s *productRepoStub) GetByName(_ context.Context, name string) (*entities.LoanProduct, error) {
	for _, p := range s.byID {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *productRepoStub) GetByCode(_ context.Context, code string) (*entities.LoanProduct, error) {
	for _, p := range s.byID {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *productRepoStub) Update(_ context.Context, product *entities.LoanProduct) error {
	s.byID[product.ID] = product
	return nil
}

func (s *productRepoStub) SoftDelete(_ context.Context, id uuid.UUID) error {
	delete(s.byID, id)
	return nil
}

func (s *productRepoStub) List(_ context.Context, activeOnly bool) ([]*entities.LoanProduct, error) {
	var out []*entities.LoanProduct
	for _, p := range s.byID {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type loanRepoStub struct {
	byID    map[uuid.UUID]*entities.Loan
	open    int64
	created int64
}

func newLoanRepoStub() *loanRepoStub {
	return &loanRepoStub{byID: map[uuid.UUID]*entities.Loan{}}
}

func (s *loanRepoStub) Create(_ context.Context, loan *entities.Loan) error {
	s.byID[loan.ID] = loan
	return nil
}

func (s *loanRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Loan, error) {
	l, ok := s.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return l, nil
}

func (s *loanRepoStub) GetByLoanNumber(_ context.Context, number string) (*entities.Loan, error) {
	for _, l := range s.byID {
		if l.LoanNumber == number {
			return l, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *loanRepoStub) Update(_ context.Context, loan *entities.Loan) error {
	s.byID[loan.ID] = loan
	return nil
}

func (s *loanRepoStub) List(context.Context, entities.LoanFilter, int, int) ([]*entities.Loan, int, error) {
	out := make([]*entities.Loan, 0, len(s.byID))
	for _, l := range s.byID {
		out = append(out, l)
	}
	return out, len(out), nil
}

func (s *loanRepoStub) CountOpenByCustomer(context.Context, uuid.UUID) (int64, error) {
	return s.open, nil
}

func (s *loanRepoStub) CountCreatedInYear(context.Context, int) (int64, error) {
	return s.created, nil
}

func (s *loanRepoStub) ListDueBefore(context.Context, time.Time, []entities.LoanStatus) ([]*entities.Loan, error) {
	return nil, nil
}

func (s *loanRepoStub) ListStaleApplications(context.Context, time.Time) ([]*entities.Loan, error) {
	return nil, nil
}

func (s *loanRepoStub) Analytics(context.Context) (*entities.LoanAnalytics, error) {
	return &entities.LoanAnalytics{}, nil
}

type scheduleRepoStub struct {
	byLoan map[uuid.UUID][]*entities.LoanScheduleEntry
}

func newScheduleRepoStub() *scheduleRepoStub {
	return &scheduleRepoStub{byLoan: map[uuid.UUID][]*entities.LoanScheduleEntry{}}
}

func (s *scheduleRepoStub) CreateBatch(_ context.Context, loanID uuid.UUID, entries []*entities.LoanScheduleEntry) error {
	s.byLoan[loanID] = entries
	return nil
}

func (s *scheduleRepoStub) GetByLoanID(_ context.Context, loanID uuid.UUID) ([]*entities.LoanScheduleEntry, error) {
	return s.byLoan[loanID], nil
}

func (s *scheduleRepoStub) MarkPaidThrough(context.Context, uuid.UUID, int) error { return nil }

type txRepoStub struct {
	byID map[uuid.UUID]*entities.Transaction
}

func newTxRepoStub() *txRepoStub {
	return &txRepoStub{byID: map[uuid.UUID]*entities.Transaction{}}
}

func (s *txRepoStub) Create(_ context.Context, tx *entities.Transaction) error {
	s.byID[tx.ID] = tx
	return nil
}

func (s *txRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Transaction, error) {
	tx, ok := s.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return tx, nil
}

func (s *txRepoStub) GetByReference(_ context.Context, reference string) (*entities.Transaction, error) {
	for _, tx := range s.byID {
		if tx.Reference == reference {
			return tx, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *txRepoStub) Update(_ context.Context, tx *entities.Transaction) error {
	s.byID[tx.ID] = tx
	return nil
}

func (s *txRepoStub) List(context.Context, entities.TransactionFilter, int, int) ([]*entities.Transaction, int, error) {
	out := make([]*entities.Transaction, 0, len(s.byID))
	for _, tx := range s.byID {
		out = append(out, tx)
	}
	return out, len(out), nil
}

func (s *txRepoStub) Summary(context.Context, entities.TransactionFilter) (*entities.TransactionSummary, error) {
	return &entities.TransactionSummary{Count: int64(len(s.byID))}, nil
}

type auditRepoStub struct {
	entries []*entities.AuditLog
}

func (s *auditRepoStub) Create(_ context.Context, log *entities.AuditLog) error {
	s.entries = append(s.entries, log)
	return nil
}

func (s *auditRepoStub) List(context.Context, entities.AuditFilter, int, int) ([]*entities.AuditLog, int, error) {
	return s.entries, len(s.entries), nil
}
