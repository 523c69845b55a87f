package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/domain/repositories"
	"tujenge.backend/pkg/loancalc"
	"tujenge.backend/pkg/utils"
)

var validLoanTypes = map[entities.LoanType]bool{
	entities.LoanTypePersonal:    true,
	entities.LoanTypeBusiness:    true,
	entities.LoanTypeEmergency:   true,
	entities.LoanTypeAgriculture: true,
	entities.LoanTypeEducation:   true,
}

var validFrequencies = map[entities.RepaymentFrequency]bool{
	entities.RepaymentDaily:    true,
	entities.RepaymentWeekly:   true,
	entities.RepaymentBiweekly: true,
	entities.RepaymentMonthly:  true,
}

// LoanProductUsecase handles loan product configuration
type LoanProductUsecase struct {
	productRepo     repositories.LoanProductRepository
	auditUC         *AuditUsecase
	maxTenureMonths int
}

// NewLoanProductUsecase creates a new loan product usecase. maxTenureMonths
// is the platform-wide ceiling no product may exceed.
func NewLoanProductUsecase(productRepo repositories.LoanProductRepository, auditUC *AuditUsecase, maxTenureMonths int) *LoanProductUsecase {
	return &LoanProductUsecase{productRepo: productRepo, auditUC: auditUC, maxTenureMonths: maxTenureMonths}
}

func (u *LoanProductUsecase) validateProductTerms(p *entities.LoanProduct) error {
	if !validLoanTypes[p.LoanType] {
		return domainerrors.BadRequest("INVALID_LOAN_TYPE", "unknown loan type")
	}
	if !validFrequencies[p.RepaymentFrequency] {
		return domainerrors.BadRequest("INVALID_FREQUENCY", "unknown repayment frequency")
	}
	if p.MinAmount.LessThanOrEqual(decimal.Zero) || p.MaxAmount.LessThan(p.MinAmount) {
		return domainerrors.BadRequest("INVALID_AMOUNT_RANGE", "product amount range is invalid")
	}
	if p.InterestRate.LessThan(loancalc.MinAnnualRate) || p.InterestRate.GreaterThan(loancalc.MaxAnnualRate) {
		return domainerrors.BadRequest("INVALID_INTEREST_RATE", "annual interest rate must be between 5% and 30%")
	}
	if p.MinTenureMonths < 1 || p.MaxTenureMonths < p.MinTenureMonths || p.MaxTenureMonths > u.maxTenureMonths {
		return domainerrors.BadRequest("INVALID_TENURE_RANGE", "product tenure range is invalid")
	}
	if p.ProcessingFeeRate.IsNegative() || p.InsuranceFeeRate.IsNegative() {
		return domainerrors.BadRequest("INVALID_FEE_RATE", "fee rates may not be negative")
	}
	if p.PenaltyRate.IsNegative() || p.PenaltyRate.GreaterThan(decimal.NewFromInt(10)) {
		return domainerrors.BadRequest("INVALID_PENALTY_RATE", "monthly penalty rate must be between 0% and 10%")
	}
	return nil
}

// Create creates a new loan product
func (u *LoanProductUsecase) Create(ctx context.Context, actor Actor, input *entities.CreateLoanProductInput) (*entities.LoanProduct, error) {
	penaltyRate := input.PenaltyRate
	if penaltyRate.IsZero() {
		penaltyRate = decimal.NewFromInt(penaltyMonthlyRate)
	}

	now := time.Now()
	product := &entities.LoanProduct{
		ID:                 utils.GenerateUUIDv7(),
		Code:               strings.ToUpper(input.Code),
		Name:               input.Name,
		LoanType:           input.LoanType,
		MinAmount:          input.MinAmount,
		MaxAmount:          input.MaxAmount,
		InterestRate:       input.InterestRate,
		PenaltyRate:        penaltyRate,
		MinTenureMonths:    input.MinTenureMonths,
		MaxTenureMonths:    input.MaxTenureMonths,
		RepaymentFrequency: input.RepaymentFrequency,
		ProcessingFeeRate:  input.ProcessingFeeRate,
		InsuranceFeeRate:   input.InsuranceFeeRate,
		RequiresCollateral: input.RequiresCollateral,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if input.Description != "" {
		product.Description = null.StringFrom(input.Description)
	}

	if err := u.validateProductTerms(product); err != nil {
		return nil, err
	}

	if _, err := u.productRepo.GetByCode(ctx, product.Code); err == nil {
		return nil, domainerrors.Conflict("PRODUCT_CODE_TAKEN", "a product with this code already exists")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if _, err := u.productRepo.GetByName(ctx, input.Name); err == nil {
		return nil, domainerrors.Conflict("PRODUCT_NAME_TAKEN", "a product with this name already exists")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	if err := u.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	u.auditUC.Record(ctx, actor, entities.AuditActionCreate, "loan_product", product.ID.String(), map[string]string{
		"code":     product.Code,
		"name":     product.Name,
		"loanType": string(product.LoanType),
	})
	return product, nil
}

// GetByID gets a loan product by ID
func (u *LoanProductUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.LoanProduct, error) {
	return u.productRepo.GetByID(ctx, id)
}

// List lists loan products
func (u *LoanProductUsecase) List(ctx context.Context, activeOnly bool) ([]*entities.LoanProduct, error) {
	return u.productRepo.List(ctx, activeOnly)
}

// Update applies partial updates to a product
func (u *LoanProductUsecase) Update(ctx context.Context, actor Actor, id uuid.UUID, input *entities.UpdateLoanProductInput) (*entities.LoanProduct, error) {
	product, err := u.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != product.Name {
		if _, err := u.productRepo.GetByName(ctx, *input.Name); err == nil {
			return nil, domainerrors.Conflict("PRODUCT_NAME_TAKEN", "a product with this name already exists")
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = null.StringFrom(*input.Description)
	}
	if input.MinAmount != nil {
		product.MinAmount = *input.MinAmount
	}
	if input.MaxAmount != nil {
		product.MaxAmount = *input.MaxAmount
	}
	if input.InterestRate != nil {
		product.InterestRate = *input.InterestRate
	}
	if input.PenaltyRate != nil {
		product.PenaltyRate = *input.PenaltyRate
	}
	if input.MinTenureMonths != nil {
		product.MinTenureMonths = *input.MinTenureMonths
	}
	if input.MaxTenureMonths != nil {
		product.MaxTenureMonths = *input.MaxTenureMonths
	}
	if input.ProcessingFeeRate != nil {
		product.ProcessingFeeRate = *input.ProcessingFeeRate
	}
	if input.InsuranceFeeRate != nil {
		product.InsuranceFeeRate = *input.InsuranceFeeRate
	}
	if input.RequiresCollateral != nil {
		product.RequiresCollateral = *input.RequiresCollateral
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := u.validateProductTerms(product); err != nil {
		return nil, err
	}

	if err := u.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	u.auditUC.Record(ctx, actor, entities.AuditActionUpdate, "loan_product", product.ID.String(), map[string]string{
		"name": product.Name,
	})
	return product, nil
}

// Delete soft deletes a loan product
func (u *LoanProductUsecase) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := u.productRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	u.auditUC.Record(ctx, actor, entities.AuditActionDelete, "loan_product", id.String(), nil)
	return nil
}
