package category

import (
	"context"

	"github.com/uangku/uangku-backend/internal/domain/entity"
	errs "github.com/uangku/uangku-backend/internal/domain/error"
	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
	"github.com/uangku/uangku-backend/internal/domain/port/persistence"
	"github.com/uangku/uangku-backend/internal/domain/port/usecase"
)

// Service handles category business logic for the owning user
type Service struct {
	categoryRepo persistence.CategoryRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new category service
func NewService(
	categoryRepo persistence.CategoryRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		categoryRepo: categoryRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ListCategories returns the user's categories ordered by name
func (s *Service) ListCategories(ctx context.Context, userID string) ([]*entity.Category, error) {
	return s.categoryRepo.ListByUser(ctx, userID)
}

// CreateCategory validates and inserts a new category. The (lowercased
// name, type) pair must be unique for the user; the check runs here and is
// additionally backed by the storage-level index.
func (s *Service) CreateCategory(ctx context.Context, userID string, input usecase.CategoryInput) (*entity.Category, error) {
	category, err := entity.NewCategory(userID, input.Name, input.Type, input.Color, input.Icon, s.timeProvider)
	if err != nil {
		return nil, err
	}

	taken, err := s.pairTaken(ctx, userID, category.Key(), "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.ErrDuplicateCategory
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created", map[string]any{
		"user_id":     userID,
		"category_id": category.ID,
		"type":        category.Type,
	})
	return category, nil
}

// UpdateCategory validates and persists changes to an existing category
func (s *Service) UpdateCategory(ctx context.Context, userID, categoryID string, input usecase.CategoryInput) (*entity.Category, error) {
	existing, err := s.categoryRepo.GetByID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	updated, err := entity.NewCategory(userID, input.Name, input.Type, input.Color, input.Icon, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if updated.Key() != existing.Key() {
		taken, err := s.pairTaken(ctx, userID, updated.Key(), categoryID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.ErrDuplicateCategory
		}
	}

	existing.Name = updated.Name
	existing.Type = updated.Type
	existing.Color = updated.Color
	existing.Icon = updated.Icon

	if err := s.categoryRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteCategory removes a category. Transactions keep their category_id;
// the reference is weak and only orphans for display.
func (s *Service) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	if _, err := s.categoryRepo.GetByID(ctx, userID, categoryID); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, userID, categoryID)
}

// pairTaken reports whether another category of the user already occupies
// the given deduplication key
func (s *Service) pairTaken(ctx context.Context, userID, key, excludeID string) (bool, error) {
	categories, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, c := range categories {
		if c.ID != excludeID && c.Key() == key {
			return true, nil
		}
	}
	return false, nil
}
