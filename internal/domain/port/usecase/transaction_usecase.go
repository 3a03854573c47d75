package usecase

import (
	"context"

	"github.com/uangku/uangku-backend/internal/domain/entity"
)

// TransactionInput carries the client-supplied fields for creating or
// updating a transaction
type TransactionInput struct {
	Type            string
	Amount          string
	CategoryID      *string
	Description     string
	TransactionDate string
}

// TransactionUseCase defines transaction operations for the owning user
type TransactionUseCase interface {
	// ListTransactions returns the user's transactions with categories
	// embedded, newest first
	ListTransactions(ctx context.Context, userID string) ([]*entity.Transaction, error)

	// CreateTransaction validates and inserts a new transaction. When a
	// category is referenced it must belong to the same user.
	CreateTransaction(ctx context.Context, userID string, input TransactionInput) (*entity.Transaction, error)

	// UpdateTransaction validates and persists changes to an existing transaction
	UpdateTransaction(ctx context.Context, userID, transactionID string, input TransactionInput) (*entity.Transaction, error)

	// DeleteTransaction removes a transaction
	DeleteTransaction(ctx context.Context, userID, transactionID string) error

	// Summarize aggregates the user's transactions into dashboard statistics
	Summarize(ctx context.Context, userID string) (*entity.Summary, error)
}
