package usecase

import (
	"context"

	"github.com/uangku/uangku-backend/internal/domain/entity"
)

// CategoryInput carries the client-supplied fields for creating or
// updating a category
type CategoryInput struct {
	Name  string
	Type  string
	Color string
	Icon  string
}

// CategoryUseCase defines category operations for the owning user
type CategoryUseCase interface {
	// ListCategories returns the user's categories ordered by name
	ListCategories(ctx context.Context, userID string) ([]*entity.Category, error)

	// CreateCategory validates and inserts a new category
	//
	// Possible errors:
	// - ErrInvalidCategoryName, ErrInvalidCategoryType: on validation failure
	// - ErrDuplicateCategory: if the (name, type) pair already exists
	CreateCategory(ctx context.Context, userID string, input CategoryInput) (*entity.Category, error)

	// UpdateCategory validates and persists changes to an existing category
	UpdateCategory(ctx context.Context, userID, categoryID string, input CategoryInput) (*entity.Category, error)

	// DeleteCategory removes a category. Transactions referencing it are
	// left untouched.
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}
