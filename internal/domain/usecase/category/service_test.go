package category

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uangku/uangku-backend/internal/domain/entity"
	errs "github.com/uangku/uangku-backend/internal/domain/error"
	"github.com/uangku/uangku-backend/internal/domain/port/usecase"
)

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time                  { return p.now }
func (p *fixedTimeProvider) Since(t time.Time) time.Duration { return p.now.Sub(t) }
func (p *fixedTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]any) {}
func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Warn(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}
func (nopLogger) Flush() error                 { return nil }

// fakeCategoryRepo is an in-memory CategoryRepository
type fakeCategoryRepo struct {
	rows   []*entity.Category
	nextID int
}

func (r *fakeCategoryRepo) ListByUser(_ context.Context, userID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.rows {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) ListPairsByUser(_ context.Context, userID string) ([]entity.CategoryPair, error) {
	var pairs []entity.CategoryPair
	for _, c := range r.rows {
		if c.UserID == userID {
			pairs = append(pairs, entity.CategoryPair{Name: c.Name, Type: string(c.Type)})
		}
	}
	return pairs, nil
}

func (r *fakeCategoryRepo) CreateBatch(_ context.Context, categories []*entity.Category) error {
	for _, c := range categories {
		if err := r.Create(context.Background(), c); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	for _, c := range r.rows {
		if c.UserID == category.UserID && c.Key() == category.Key() {
			return errs.ErrDuplicateCategory
		}
	}
	if category.ID == "" {
		r.nextID++
		category.ID = "cat-" + strconv.Itoa(r.nextID)
	}
	r.rows = append(r.rows, category)
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, userID, categoryID string) (*entity.Category, error) {
	for _, c := range r.rows {
		if c.UserID == userID && c.ID == categoryID {
			return c, nil
		}
	}
	return nil, errs.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	for i, c := range r.rows {
		if c.UserID == category.UserID && c.ID == category.ID {
			r.rows[i] = category
			return nil
		}
	}
	return errs.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) Delete(_ context.Context, userID, categoryID string) error {
	for i, c := range r.rows {
		if c.UserID == userID && c.ID == categoryID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return errs.ErrCategoryNotFound
}

func newTestService() (*Service, *fakeCategoryRepo) {
	repo := &fakeCategoryRepo{}
	tp := &fixedTimeProvider{now: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)}
	return NewService(repo, tp, nopLogger{}), repo
}

func TestCreateCategory(t *testing.T) {
	service, _ := newTestService()

	category, err := service.CreateCategory(context.Background(), "user-1", usecase.CategoryInput{
		Name:  "  Makan  ",
		Type:  "expense",
		Color: "#fb7185",
		Icon:  "Utensils",
	})

	require.NoError(t, err)
	assert.Equal(t, "Makan", category.Name, "name should be trimmed")
	assert.Equal(t, entity.TypeExpense, category.Type)
	assert.NotEmpty(t, category.ID)
}

func TestCreateCategoryValidation(t *testing.T) {
	service, _ := newTestService()

	tests := []struct {
		name    string
		input   usecase.CategoryInput
		wantErr error
	}{
		{
			name:    "empty name",
			input:   usecase.CategoryInput{Name: "   ", Type: "expense"},
			wantErr: errs.ErrInvalidCategoryName,
		},
		{
			name:    "unknown type",
			input:   usecase.CategoryInput{Name: "Makan", Type: "savings"},
			wantErr: errs.ErrInvalidCategoryType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateCategory(context.Background(), "user-1", tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateCategoryRejectsDuplicatePair(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreateCategory(context.Background(), "user-1", usecase.CategoryInput{Name: "Makan", Type: "expense"})
	require.NoError(t, err)

	// Same name with different case still collides
	_, err = service.CreateCategory(context.Background(), "user-1", usecase.CategoryInput{Name: "MAKAN", Type: "expense"})
	assert.ErrorIs(t, err, errs.ErrDuplicateCategory)

	// Same name with the other type is a distinct pair
	_, err = service.CreateCategory(context.Background(), "user-1", usecase.CategoryInput{Name: "Makan", Type: "income"})
	assert.NoError(t, err)

	// Another user is unaffected
	_, err = service.CreateCategory(context.Background(), "user-2", usecase.CategoryInput{Name: "Makan", Type: "expense"})
	assert.NoError(t, err)
}

func TestUpdateCategory(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateCategory(context.Background(), "user-1", usecase.CategoryInput{Name: "Makan", Type: "expense", Color: "#111111"})
	require.NoError(t, err)

	updated, err := service.UpdateCategory(context.Background(), "user-1", created.ID, usecase.CategoryInput{
		Name:  "Jajan",
		Type:  "expense",
		Color: "#facc15",
	})

	require.NoError(t, err)
	assert.Equal(t, "Jajan", updated.Name)
	assert.Equal(t, "#facc15", updated.Color)
	assert.Equal(t, created.ID, updated.ID)
}

func TestUpdateCategoryRejectsCollidingRename(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreateCategory(context.Background(), "user-1", usecase.CategoryInput{Name: "Makan", Type: "expense"})
	require.NoError(t, err)
	other, err := service.CreateCategory(context.Background(), "user-1", usecase.CategoryInput{Name: "Jajan", Type: "expense"})
	require.NoError(t, err)

	_, err = service.UpdateCategory(context.Background(), "user-1", other.ID, usecase.CategoryInput{Name: "makan", Type: "expense"})
	assert.ErrorIs(t, err, errs.ErrDuplicateCategory)
}

func TestUpdateCategoryKeepingOwnPair(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateCategory(context.Background(), "user-1", usecase.CategoryInput{Name: "Makan", Type: "expense"})
	require.NoError(t, err)

	// Changing only the color keeps the same pair and must not collide
	// with the category itself
	updated, err := service.UpdateCategory(context.Background(), "user-1", created.ID, usecase.CategoryInput{
		Name:  "Makan",
		Type:  "expense",
		Color: "#22c55e",
	})

	require.NoError(t, err)
	assert.Equal(t, "#22c55e", updated.Color)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	service, _ := newTestService()

	_, err := service.UpdateCategory(context.Background(), "user-1", "missing", usecase.CategoryInput{Name: "Makan", Type: "expense"})
	assert.ErrorIs(t, err, errs.ErrCategoryNotFound)
}

func TestDeleteCategory(t *testing.T) {
	service, repo := newTestService()

	created, err := service.CreateCategory(context.Background(), "user-1", usecase.CategoryInput{Name: "Makan", Type: "expense"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteCategory(context.Background(), "user-1", created.ID))
	assert.Empty(t, repo.rows)

	err = service.DeleteCategory(context.Background(), "user-1", created.ID)
	assert.ErrorIs(t, err, errs.ErrCategoryNotFound)
}

func TestDeleteCategoryScopedToOwner(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateCategory(context.Background(), "user-1", usecase.CategoryInput{Name: "Makan", Type: "expense"})
	require.NoError(t, err)

	err = service.DeleteCategory(context.Background(), "user-2", created.ID)
	assert.ErrorIs(t, err, errs.ErrCategoryNotFound)
}
