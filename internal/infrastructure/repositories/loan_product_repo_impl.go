package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/infrastructure/models"
)

// LoanProductRepository implements loan product data operations
type LoanProductRepository struct {
	db *gorm.DB
}

// NewLoanProductRepository creates a new loan product repository
func NewLoanProductRepository(db *gorm.DB) *LoanProductRepository {
	return &LoanProductRepository{db: db}
}

// Create creates a new loan product
func (r *LoanProductRepository) Create(ctx context.Context, product *entities.LoanProduct) error {
	m := &models.LoanProduct{
		ID:                 product.ID,
		Code:               product.Code,
		Name:               product.Name,
		Description:        product.Description.Ptr(),
		LoanType:           string(product.LoanType),
		MinAmount:          product.MinAmount,
		MaxAmount:          product.MaxAmount,
		InterestRate:       product.InterestRate,
		PenaltyRate:        product.PenaltyRate,
		MinTenureMonths:    product.MinTenureMonths,
		MaxTenureMonths:    product.MaxTenureMonths,
		RepaymentFrequency: string(product.RepaymentFrequency),
		ProcessingFeeRate:  product.ProcessingFeeRate,
		InsuranceFeeRate:   product.InsuranceFeeRate,
		RequiresCollateral: product.RequiresCollateral,
		Active:             product.Active,
		CreatedAt:          product.CreatedAt,
		UpdatedAt:          product.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	product.ID = m.ID
	return nil
}

// GetByID gets a loan product by ID
func (r *LoanProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.LoanProduct, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByName gets a loan product by its unique name
func (r *LoanProductRepository) GetByName(ctx context.Context, name string) (*entities.LoanProduct, error) {
	return r.getOne(ctx, "name = ?", name)
}

// GetByCode gets a loan product by its unique code
func (r *LoanProductRepository) GetByCode(ctx context.Context, code string) (*entities.LoanProduct, error) {
	return r.getOne(ctx, "code = ?", code)
}

func (r *LoanProductRepository) getOne(ctx context.Context, query string, arg interface{}) (*entities.LoanProduct, error) {
	var m models.LoanProduct
	if err := GetDB(ctx, r.db).WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return loanProductToEntity(&m), nil
}

// Update persists all mutable product fields
func (r *LoanProductRepository) Update(ctx context.Context, product *entities.LoanProduct) error {
	updates := map[string]interface{}{
		"name":                product.Name,
		"description":         product.Description.Ptr(),
		"min_amount":          product.MinAmount,
		"max_amount":          product.MaxAmount,
		"interest_rate":       product.InterestRate,
		"penalty_rate":        product.PenaltyRate,
		"min_tenure_months":   product.MinTenureMonths,
		"max_tenure_months":   product.MaxTenureMonths,
		"processing_fee_rate": product.ProcessingFeeRate,
		"insurance_fee_rate":  product.InsuranceFeeRate,
		"requires_collateral": product.RequiresCollateral,
		"active":              product.Active,
		"updated_at":          time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.LoanProduct{}).Where("id = ?", product.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a loan product
func (r *LoanProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.LoanProduct{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists loan products, optionally only active ones
func (r *LoanProductRepository) List(ctx context.Context, activeOnly bool) ([]*entities.LoanProduct, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var productModels []models.LoanProduct
	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]*entities.LoanProduct, 0, len(productModels))
	for i := range productModels {
		products = append(products, loanProductToEntity(&productModels[i]))
	}
	return products, nil
}

func loanProductToEntity(m *models.LoanProduct) *entities.LoanProduct {
	return &entities.LoanProduct{
		ID:                 m.ID,
		Code:               m.Code,
		Name:               m.Name,
		Description:        null.StringFromPtr(m.Description),
		LoanType:           entities.LoanType(m.LoanType),
		MinAmount:          m.MinAmount,
		MaxAmount:          m.MaxAmount,
		InterestRate:       m.InterestRate,
		PenaltyRate:        m.PenaltyRate,
		MinTenureMonths:    m.MinTenureMonths,
		MaxTenureMonths:    m.MaxTenureMonths,
		RepaymentFrequency: entities.RepaymentFrequency(m.RepaymentFrequency),
		ProcessingFeeRate:  m.ProcessingFeeRate,
		InsuranceFeeRate:   m.InsuranceFeeRate,
		RequiresCollateral: m.RequiresCollateral,
		Active:             m.Active,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
