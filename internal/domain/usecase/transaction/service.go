package transaction

import (
	"context"

	"github.com/uangku/uangku-backend/internal/domain/entity"
	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
	"github.com/uangku/uangku-backend/internal/domain/port/persistence"
	"github.com/uangku/uangku-backend/internal/domain/port/usecase"
)

// Service handles transaction business logic for the owning user
type Service struct {
	transactionRepo persistence.TransactionRepository
	categoryRepo    persistence.CategoryRepository
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
}

// NewService creates a new transaction service
func NewService(
	transactionRepo persistence.TransactionRepository,
	categoryRepo persistence.CategoryRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// ListTransactions returns the user's transactions, newest first
func (s *Service) ListTransactions(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	return s.transactionRepo.ListByUser(ctx, userID)
}

// CreateTransaction validates and inserts a new transaction. A referenced
// category must belong to the same user.
func (s *Service) CreateTransaction(ctx context.Context, userID string, input usecase.TransactionInput) (*entity.Transaction, error) {
	transaction, err := entity.NewTransaction(
		userID,
		input.Type,
		input.Amount,
		input.CategoryID,
		input.Description,
		input.TransactionDate,
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	if err := s.checkCategoryOwnership(ctx, userID, transaction.CategoryID); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction created", map[string]any{
		"user_id":        userID,
		"transaction_id": transaction.ID,
		"type":           transaction.Type,
		"amount":         transaction.Amount,
	})
	return transaction, nil
}

// UpdateTransaction validates and persists changes to an existing transaction
func (s *Service) UpdateTransaction(ctx context.Context, userID, transactionID string, input usecase.TransactionInput) (*entity.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	updated, err := entity.NewTransaction(
		userID,
		input.Type,
		input.Amount,
		input.CategoryID,
		input.Description,
		input.TransactionDate,
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	if err := s.checkCategoryOwnership(ctx, userID, updated.CategoryID); err != nil {
		return nil, err
	}

	existing.Type = updated.Type
	existing.Amount = updated.Amount
	existing.AmountInCents = updated.AmountInCents
	existing.CategoryID = updated.CategoryID
	existing.Description = updated.Description
	existing.TransactionDate = updated.TransactionDate

	if err := s.transactionRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteTransaction removes a transaction owned by the user
func (s *Service) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	if _, err := s.transactionRepo.GetByID(ctx, userID, transactionID); err != nil {
		return err
	}
	return s.transactionRepo.Delete(ctx, userID, transactionID)
}

// Summarize aggregates the user's transactions into dashboard statistics
func (s *Service) Summarize(ctx context.Context, userID string) (*entity.Summary, error) {
	transactions, err := s.transactionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return entity.ComputeSummary(transactions, s.timeProvider.Now()), nil
}

// checkCategoryOwnership rejects category references that do not resolve
// to a category owned by the caller
func (s *Service) checkCategoryOwnership(ctx context.Context, userID string, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	_, err := s.categoryRepo.GetByID(ctx, userID, *categoryID)
	return err
}
