package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"tujenge.backend/internal/domain/entities"
	domainerrors "tujenge.backend/internal/domain/errors"
	"tujenge.backend/internal/infrastructure/models"
)

// TransactionRepository implements ledger data operations
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create creates a new ledger entry
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	m := &models.Transaction{
		ID:            tx.ID,
		Reference:     tx.Reference,
		LoanID:        tx.LoanID,
		CustomerID:    tx.CustomerID,
		Type:          string(tx.Type),
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Channel:       string(tx.Channel),
		ChannelRef:    tx.ChannelRef.Ptr(),
		Status:        string(tx.Status),
		Narration:     tx.Narration.Ptr(),
		PrincipalPaid: tx.PrincipalPaid,
		InterestPaid:  tx.InterestPaid,
		PenaltyPaid:   tx.PenaltyPaid,
		FeesPaid:      tx.FeesPaid,
		RecordedBy:    tx.RecordedBy,
		ReversedBy:    tx.ReversedBy,
		ReversalOf:    tx.ReversalOf,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	tx.ID = m.ID
	return nil
}

// GetByID gets a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return transactionToEntity(&m), nil
}

// GetByReference gets a transaction by its unique reference
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*entities.Transaction, error) {
	var m models.Transaction
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return transactionToEntity(&m), nil
}

// Update persists status and reversal changes
func (r *TransactionRepository) Update(ctx context.Context, tx *entities.Transaction) error {
	updates := map[string]interface{}{
		"status":      string(tx.Status),
		"narration":   tx.Narration.Ptr(),
		"channel_ref": tx.ChannelRef.Ptr(),
		"reversed_by": tx.ReversedBy,
		"reversal_of": tx.ReversalOf,
		"updated_at":  tx.UpdatedAt,
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).Where("id = ?", tx.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func applyTransactionFilter(query *gorm.DB, filter entities.TransactionFilter) *gorm.DB {
	if filter.LoanID != nil {
		query = query.Where("loan_id = ?", *filter.LoanID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Channel != "" {
		query = query.Where("channel = ?", string(filter.Channel))
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}
	return query
}

// List lists transactions matching the filter with pagination
func (r *TransactionRepository) List(ctx context.Context, filter entities.TransactionFilter, limit, offset int) ([]*entities.Transaction, int, error) {
	query := applyTransactionFilter(r.db.WithContext(ctx).Model(&models.Transaction{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txModels []models.Transaction
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&txModels).Error; err != nil {
		return nil, 0, err
	}

	txs := make([]*entities.Transaction, 0, len(txModels))
	for i := range txModels {
		txs = append(txs, transactionToEntity(&txModels[i]))
	}
	return txs, int(total), nil
}

// Summary aggregates completed ledger totals matching the filter
func (r *TransactionRepository) Summary(ctx context.Context, filter entities.TransactionFilter) (*entities.TransactionSummary, error) {
	out := &entities.TransactionSummary{
		ByChannel: make(map[string]int64),
	}

	completed := string(entities.TransactionStatusCompleted)

	type sums struct {
		TotalDisbursed decimal.Decimal
		TotalRepaid    decimal.Decimal
		TotalFees      decimal.Decimal
		TotalPenalties decimal.Decimal
		Count          int64
	}
	var s sums
	query := applyTransactionFilter(r.db.WithContext(ctx).Model(&models.Transaction{}), filter).
		Where("status = ?", completed)
	if err := query.
		Select(`
			COALESCE(SUM(CASE WHEN type = 'disbursement' THEN amount ELSE 0 END), 0) AS total_disbursed,
			COALESCE(SUM(CASE WHEN type = 'repayment' THEN amount ELSE 0 END), 0) AS total_repaid,
			COALESCE(SUM(fees_paid), 0) AS total_fees,
			COALESCE(SUM(penalty_paid), 0) AS total_penalties,
			COUNT(*) AS count`).
		Scan(&s).Error; err != nil {
		return nil, err
	}
	out.TotalDisbursed = s.TotalDisbursed
	out.TotalRepaid = s.TotalRepaid
	out.TotalFees = s.TotalFees
	out.TotalPenalties = s.TotalPenalties
	out.Count = s.Count

	type bucket struct {
		Key   string
		Count int64
	}
	var byChannel []bucket
	channelQuery := applyTransactionFilter(r.db.WithContext(ctx).Model(&models.Transaction{}), filter).
		Where("status = ?", completed)
	if err := channelQuery.
		Select("channel AS key, COUNT(*) AS count").
		Group("channel").
		Scan(&byChannel).Error; err != nil {
		return nil, err
	}
	for _, b := range byChannel {
		out.ByChannel[b.Key] = b.Count
	}

	return out, nil
}

func transactionToEntity(m *models.Transaction) *entities.Transaction {
	return &entities.Transaction{
		ID:            m.ID,
		Reference:     m.Reference,
		LoanID:        m.LoanID,
		CustomerID:    m.CustomerID,
		Type:          entities.TransactionType(m.Type),
		Amount:        m.Amount,
		Currency:      m.Currency,
		Channel:       entities.PaymentChannel(m.Channel),
		ChannelRef:    null.StringFromPtr(m.ChannelRef),
		Status:        entities.TransactionStatus(m.Status),
		Narration:     null.StringFromPtr(m.Narration),
		PrincipalPaid: m.PrincipalPaid,
		InterestPaid:  m.InterestPaid,
		PenaltyPaid:   m.PenaltyPaid,
		FeesPaid:      m.FeesPaid,
		RecordedBy:    m.RecordedBy,
		ReversedBy:    m.ReversedBy,
		ReversalOf:    m.ReversalOf,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
