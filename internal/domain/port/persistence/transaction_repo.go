package persistence

import (
	"context"

	"github.com/uangku/uangku-backend/internal/domain/entity"
)

// AdminTransactionFilter carries the optional filters and pagination for the
// cross-user transaction listing used by the admin gateway. Zero values mean
// "not set".
type AdminTransactionFilter struct {
	UserID string // exact match on user_id
	Type   string // exact match on type (income|expense)
	From   string // inclusive lower bound on transaction_date, YYYY-MM-DD
	To     string // inclusive upper bound on transaction_date, YYYY-MM-DD
	Limit  int
	Offset int
}

// TransactionRepository defines the methods to interact with transaction data.
// User-scoped methods always constrain on the owning user; ListAll is the
// elevated path reserved for the admin gateway.
type TransactionRepository interface {
	// ListByUser returns the user's transactions with their category
	// embedded, ordered by transaction_date descending then created_at
	// descending
	ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error)

	// Create inserts a single transaction
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction owned by the user
	//
	// Possible errors:
	// - ErrTransactionNotFound: if no such transaction exists for this user
	GetByID(ctx context.Context, userID, transactionID string) (*entity.Transaction, error)

	// Update persists changes to a transaction owned by the user
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction owned by the user
	Delete(ctx context.Context, userID, transactionID string) error

	// ListAll returns transactions across all users matching the filter,
	// ordered by transaction_date descending, together with the exact
	// total count of matching rows before pagination. Category name and
	// type are joined onto each row.
	ListAll(ctx context.Context, filter AdminTransactionFilter) ([]*entity.Transaction, int64, error)
}
