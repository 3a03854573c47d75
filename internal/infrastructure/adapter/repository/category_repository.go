package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/uangku/uangku-backend/internal/domain/entity"
	errs "github.com/uangku/uangku-backend/internal/domain/error"
	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/database"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// CategoryRepository implements CategoryRepository interface using GORM
type CategoryRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorMapper     *database.ErrorMapper
	errorClassifier *ErrorClassifier
}

// NewCategoryRepository creates a new CategoryRepository instance
func NewCategoryRepository(db *gorm.DB, errorMapper *database.ErrorMapper, logger coreport.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:              db,
		logger:          logger,
		errorMapper:     errorMapper,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a category entity to a database model
func (r *CategoryRepository) entityToModel(category *entity.Category) model.Category {
	return model.Category{
		ID:        category.ID,
		UserID:    category.UserID,
		Name:      category.Name,
		Type:      string(category.Type),
		Color:     category.Color,
		Icon:      category.Icon,
		CreatedAt: category.CreatedAt,
	}
}

// modelToEntity converts a category model to an entity
func (r *CategoryRepository) modelToEntity(m *model.Category) *entity.Category {
	return &entity.Category{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Type:      entity.CategoryType(m.Type),
		Color:     m.Color,
		Icon:      m.Icon,
		CreatedAt: m.CreatedAt,
	}
}

// ListByUser returns all categories belonging to the user, ordered by name
func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Category, error) {
	var categoryModels []model.Category
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categoryModels)

	if result.Error != nil {
		r.logger.Error("Failed to list categories", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, r.errorMapper.MapError(result.Error, "list categories")
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for i := range categoryModels {
		categories = append(categories, r.modelToEntity(&categoryModels[i]))
	}
	return categories, nil
}

// ListPairsByUser returns only the (name, type) pairs of the user's categories
func (r *CategoryRepository) ListPairsByUser(ctx context.Context, userID string) ([]entity.CategoryPair, error) {
	var rows []struct {
		Name string
		Type string
	}
	result := r.db.WithContext(ctx).Model(&model.Category{}).
		Select("name", "type").
		Where("user_id = ?", userID).
		Find(&rows)

	if result.Error != nil {
		r.logger.Error("Failed to list category pairs", map[string]any{
			"user_id": userID,
			"error":   result.Error.Error(),
		})
		return nil, r.errorMapper.MapError(result.Error, "list category pairs")
	}

	pairs := make([]entity.CategoryPair, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, entity.CategoryPair{
			Name: row.Name,
			Type: row.Type,
		})
	}
	return pairs, nil
}

// CreateBatch inserts the given categories in a single batch write
func (r *CategoryRepository) CreateBatch(ctx context.Context, categories []*entity.Category) error {
	if len(categories) == 0 {
		return nil
	}

	categoryModels := make([]model.Category, 0, len(categories))
	for _, category := range categories {
		if category.ID == "" {
			category.ID = uuid.NewString()
		}
		categoryModels = append(categoryModels, r.entityToModel(category))
	}

	result := r.db.WithContext(ctx).Create(&categoryModels)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate category detected in batch insert", map[string]any{
				"user_id": categories[0].UserID,
				"count":   len(categories),
			})
			return errs.ErrDuplicateCategory
		}
		r.logger.Error("Failed to batch insert categories", map[string]any{
			"user_id": categories[0].UserID,
			"count":   len(categories),
			"error":   result.Error.Error(),
		})
		return r.errorMapper.MapError(result.Error, "batch insert categories")
	}

	r.logger.Info("Categories created successfully", map[string]any{
		"user_id": categories[0].UserID,
		"count":   len(categories),
	})
	return nil
}

// Create inserts a single category
func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	categoryModel := r.entityToModel(category)

	result := r.db.WithContext(ctx).Create(&categoryModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate category detected", map[string]any{
				"user_id": category.UserID,
				"key":     category.Key(),
			})
			return errs.ErrDuplicateCategory
		}
		r.logger.Error("Failed to create category", map[string]any{
			"user_id": category.UserID,
			"error":   result.Error.Error(),
		})
		return r.errorMapper.MapError(result.Error, "create category")
	}
	return nil
}

// GetByID retrieves a category owned by the user
func (r *CategoryRepository) GetByID(ctx context.Context, userID, categoryID string) (*entity.Category, error) {
	var categoryModel model.Category
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", categoryID, userID).
		First(&categoryModel)

	if result.Error != nil {
		mapped := r.errorMapper.MapEntityNotFoundError(result.Error, database.EntityTypeCategory)
		if !errs.IsNotFoundError(mapped) {
			r.logger.Error("Failed to get category", map[string]any{
				"user_id":     userID,
				"category_id": categoryID,
				"error":       result.Error.Error(),
			})
		}
		return nil, mapped
	}

	return r.modelToEntity(&categoryModel), nil
}

// Update persists changes to a category owned by the user
func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	result := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ? AND user_id = ?", category.ID, category.UserID).
		Updates(map[string]interface{}{
			"name":  category.Name,
			"type":  string(category.Type),
			"color": category.Color,
			"icon":  category.Icon,
		})

	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return errs.ErrDuplicateCategory
		}
		r.logger.Error("Failed to update category", map[string]any{
			"user_id":     category.UserID,
			"category_id": category.ID,
			"error":       result.Error.Error(),
		})
		return r.errorMapper.MapError(result.Error, "update category")
	}

	if result.RowsAffected == 0 {
		return errs.ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category owned by the user. Transactions referencing the
// category keep their category_id; the reference is weak.
func (r *CategoryRepository) Delete(ctx context.Context, userID, categoryID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Delete(&model.Category{})

	if result.Error != nil {
		r.logger.Error("Failed to delete category", map[string]any{
			"user_id":     userID,
			"category_id": categoryID,
			"error":       result.Error.Error(),
		})
		return r.errorMapper.MapError(result.Error, "delete category")
	}

	if result.RowsAffected == 0 {
		return errs.ErrCategoryNotFound
	}

	r.logger.Info("Category deleted", map[string]any{
		"user_id":     userID,
		"category_id": categoryID,
	})
	return nil
}
