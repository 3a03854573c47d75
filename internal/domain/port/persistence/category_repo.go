package persistence

import (
	"context"

	"github.com/uangku/uangku-backend/internal/domain/entity"
)

// CategoryRepository defines the methods to interact with category data.
// Every method is scoped to a single owning user; there is no cross-user
// category access anywhere in the system.
type CategoryRepository interface {
	// ListByUser returns all categories belonging to the user, ordered by
	// name ascending
	//
	// Possible errors:
	// - ErrDatabaseConnection: if the database is unreachable
	ListByUser(ctx context.Context, userID string) ([]*entity.Category, error)

	// ListPairsByUser returns the (name, type) pairs of the user's
	// categories. Used by the seeding protocol to compute the set
	// difference against the default set.
	ListPairsByUser(ctx context.Context, userID string) ([]entity.CategoryPair, error)

	// CreateBatch inserts the given categories in a single batch write.
	// A duplicate-key failure on the (user_id, lower(name), type) index is
	// mapped to ErrDuplicateCategory.
	CreateBatch(ctx context.Context, categories []*entity.Category) error

	// Create inserts a single category
	//
	// Possible errors:
	// - ErrDuplicateCategory: if the (name, type) pair already exists for the user
	Create(ctx context.Context, category *entity.Category) error

	// GetByID retrieves a category owned by the user
	//
	// Possible errors:
	// - ErrCategoryNotFound: if no such category exists for this user
	GetByID(ctx context.Context, userID, categoryID string) (*entity.Category, error)

	// Update persists changes to a category owned by the user
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category owned by the user. Transactions referencing
	// it keep their category_id; the reference is weak.
	Delete(ctx context.Context, userID, categoryID string) error
}
