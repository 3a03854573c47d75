package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/uangku/uangku-backend/internal/domain/entity"
	errs "github.com/uangku/uangku-backend/internal/domain/error"
	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
	"github.com/uangku/uangku-backend/internal/domain/port/persistence"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/database"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db          *gorm.DB
	logger      coreport.Logger
	errorMapper *database.ErrorMapper
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, errorMapper *database.ErrorMapper, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:          db,
		logger:      logger,
		errorMapper: errorMapper,
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(transaction *entity.Transaction) model.Transaction {
	return model.Transaction{
		ID:              transaction.ID,
		UserID:          transaction.UserID,
		Type:            string(transaction.Type),
		AmountInCents:   transaction.AmountInCents,
		CategoryID:      transaction.CategoryID,
		Description:     transaction.Description,
		TransactionDate: transaction.TransactionDate,
		CreatedAt:       transaction.CreatedAt,
	}
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	transaction := &entity.Transaction{
		ID:              m.ID,
		UserID:          m.UserID,
		Type:            entity.CategoryType(m.Type),
		Amount:          entity.AmountInCentsToString(m.AmountInCents),
		AmountInCents:   m.AmountInCents,
		CategoryID:      m.CategoryID,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		CreatedAt:       m.CreatedAt,
	}
	if m.Category != nil {
		transaction.Category = &entity.Category{
			ID:        m.Category.ID,
			UserID:    m.Category.UserID,
			Name:      m.Category.Name,
			Type:      entity.CategoryType(m.Category.Type),
			Color:     m.Category.Color,
			Icon:      m.Category.Icon,
			CreatedAt: m.Category.CreatedAt,
		}
	}
	return transaction
}

// ListByUser returns the user's transactions with their category preloaded,
// newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	var transactionModels []model.Transaction
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("transaction_date DESC, created_at DESC").
		Find(&transactionModels)

	if result.Error != nil {
		r.logger.Error("Failed to list transactions", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, r.errorMapper.MapError(result.Error, "list transactions")
	}

	transactions := make([]*entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transactions = append(transactions, r.modelToEntity(&transactionModels[i]))
	}
	return transactions, nil
}

// Create inserts a single transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.NewString()
	}
	transactionModel := r.entityToModel(transaction)

	result := r.db.WithContext(ctx).Create(&transactionModel)
	if result.Error != nil {
		r.logger.Error("Failed to create transaction", map[string]any{
			"user_id": transaction.UserID,
			"error":   result.Error.Error(),
		})
		return r.errorMapper.MapError(result.Error, "create transaction")
	}

	r.logger.Info("Transaction created successfully", map[string]any{
		"transaction_id": transaction.ID,
		"user_id":        transaction.UserID,
	})
	return nil
}

// GetByID retrieves a transaction owned by the user
func (r *TransactionRepository) GetByID(ctx context.Context, userID, transactionID string) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND user_id = ?", transactionID, userID).
		First(&transactionModel)

	if result.Error != nil {
		mapped := r.errorMapper.MapEntityNotFoundError(result.Error, database.EntityTypeTransaction)
		if !errs.IsNotFoundError(mapped) {
			r.logger.Error("Failed to get transaction", map[string]any{
				"user_id":        userID,
				"transaction_id": transactionID,
				"error":          result.Error.Error(),
			})
		}
		return nil, mapped
	}

	return r.modelToEntity(&transactionModel), nil
}

// Update persists changes to a transaction owned by the user
func (r *TransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := r.entityToModel(transaction)

	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
		Updates(map[string]interface{}{
			"type":             transactionModel.Type,
			"amount_in_cents":  transactionModel.AmountInCents,
			"category_id":      transactionModel.CategoryID,
			"description":      transactionModel.Description,
			"transaction_date": transactionModel.TransactionDate,
		})

	if result.Error != nil {
		r.logger.Error("Failed to update transaction", map[string]any{
			"user_id":        transaction.UserID,
			"transaction_id": transaction.ID,
			"error":          result.Error.Error(),
		})
		return r.errorMapper.MapError(result.Error, "update transaction")
	}

	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction owned by the user
func (r *TransactionRepository) Delete(ctx context.Context, userID, transactionID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", transactionID, userID).
		Delete(&model.Transaction{})

	if result.Error != nil {
		r.logger.Error("Failed to delete transaction", map[string]any{
			"user_id":        userID,
			"transaction_id": transactionID,
			"error":          result.Error.Error(),
		})
		return r.errorMapper.MapError(result.Error, "delete transaction")
	}

	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}

	r.logger.Info("Transaction deleted", map[string]any{
		"user_id":        userID,
		"transaction_id": transactionID,
	})
	return nil
}

// ListAll returns transactions across all users matching the filter, newest
// first, together with the exact count of matching rows before pagination
func (r *TransactionRepository) ListAll(ctx context.Context, filter persistence.AdminTransactionFilter) ([]*entity.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Transaction{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.From != "" {
		query = query.Where("transaction_date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("transaction_date <= ?", filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Error("Failed to count transactions", map[string]any{
			"error": err.Error(),
		})
		return nil, 0, r.errorMapper.MapError(err, "count transactions")
	}

	var transactionModels []model.Transaction
	result := query.
		Preload("Category").
		Order("transaction_date DESC, created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&transactionModels)

	if result.Error != nil {
		r.logger.Error("Failed to list all transactions", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, 0, r.errorMapper.MapError(result.Error, "list all transactions")
	}

	transactions := make([]*entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transactions = append(transactions, r.modelToEntity(&transactionModels[i]))
	}
	return transactions, total, nil
}
