package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/usecases"
)

func newProductFixture() (*usecases.LoanProductUsecase, *MockLoanProductRepository) {
	productRepo := new(MockLoanProductRepository)
	auditRepo := new(MockAuditLogRepository)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	return usecases.NewLoanProductUsecase(productRepo, usecases.NewAuditUsecase(auditRepo), 60), productRepo
}

func validProductInput() *entities.CreateLoanProductInput {
	return &entities.CreateLoanProductInput{
		Code:               "biashara",
		Name:               "Biashara Loan",
		LoanType:           entities.LoanTypeBusiness,
		MinAmount:          decimal.NewFromInt(100000),
		MaxAmount:          decimal.NewFromInt(5000000),
		InterestRate:       decimal.NewFromInt(18),
		MinTenureMonths:    3,
		MaxTenureMonths:    24,
		RepaymentFrequency: entities.RepaymentMonthly,
		ProcessingFeeRate:  decimal.NewFromInt(2),
		InsuranceFeeRate:   decimal.NewFromInt(1),
	}
}

func TestLoanProductUsecase_Create_Success(t *testing.T) {
	uc, productRepo := newProductFixture()
	ctx := context.Background()

	productRepo.On("GetByCode", ctx, "BIASHARA").Return(nil, domainerrors.ErrNotFound).Once()
	productRepo.On("GetByName", ctx, "Biashara Loan").Return(nil, domainerrors.ErrNotFound).Once()
	productRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

	product, err := uc.Create(ctx, usecases.Actor{}, validProductInput())
	assert.NoError(t, err)
	assert.True(t, product.Active)
	assert.Equal(t, "BIASHARA", product.Code)
	assert.Equal(t, entities.LoanTypeBusiness, product.LoanType)
	// unset penalty rate falls back to the platform default of 2%
	assert.True(t, product.PenaltyRate.Equal(decimal.NewFromInt(2)), product.PenaltyRate.String())
	productRepo.AssertExpectations(t)
}

func TestLoanProductUsecase_Create_CodeTaken(t *testing.T) {
	uc, productRepo := newProductFixture()
	ctx := context.Background()

	existing := &entities.LoanProduct{ID: uuid.New(), Code: "BIASHARA"}
	productRepo.On("GetByCode", ctx, "BIASHARA").Return(existing, nil).Once()

	_, err := uc.Create(ctx, usecases.Actor{}, validProductInput())
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoanProductUsecase_Create_NameTaken(t *testing.T) {
	uc, productRepo := newProductFixture()
	ctx := context.Background()

	existing := &entities.LoanProduct{ID: uuid.New(), Name: "Biashara Loan"}
	productRepo.On("GetByCode", ctx, "BIASHARA").Return(nil, domainerrors.ErrNotFound).Once()
	productRepo.On("GetByName", ctx, "Biashara Loan").Return(existing, nil).Once()

	_, err := uc.Create(ctx, usecases.Actor{}, validProductInput())
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestLoanProductUsecase_Create_PenaltyRateTooHigh(t *testing.T) {
	uc, _ := newProductFixture()

	input := validProductInput()
	input.PenaltyRate = decimal.NewFromInt(15)
	_, err := uc.Create(context.Background(), usecases.Actor{}, input)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestLoanProductUsecase_Create_RateOutOfBounds(t *testing.T) {
	uc, _ := newProductFixture()

	input := validProductInput()
	input.InterestRate = decimal.NewFromInt(45)
	_, err := uc.Create(context.Background(), usecases.Actor{}, input)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestLoanProductUsecase_Create_TenureTooLong(t *testing.T) {
	uc, _ := newProductFixture()

	input := validProductInput()
	input.MaxTenureMonths = 72
	_, err := uc.Create(context.Background(), usecases.Actor{}, input)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestLoanProductUsecase_Update_RevalidatesTerms(t *testing.T) {
	uc, productRepo := newProductFixture()
	ctx := context.Background()

	product := &entities.LoanProduct{
		ID:                 uuid.New(),
		Name:               "Biashara Loan",
		LoanType:           entities.LoanTypeBusiness,
		MinAmount:          decimal.NewFromInt(100000),
		MaxAmount:          decimal.NewFromInt(5000000),
		InterestRate:       decimal.NewFromInt(18),
		MinTenureMonths:    3,
		MaxTenureMonths:    24,
		RepaymentFrequency: entities.RepaymentMonthly,
	}
	productRepo.On("GetByID", ctx, product.ID).Return(product, nil).Once()

	badRate := decimal.NewFromInt(2)
	_, err := uc.Update(ctx, usecases.Actor{}, product.ID, &entities.UpdateLoanProductInput{InterestRate: &badRate})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}
