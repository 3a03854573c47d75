package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/uangku/uangku-backend/internal/domain/error"
	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
)

// CategoryType represents the direction of money flow a category applies to
type CategoryType string

// Category types
const (
	TypeIncome  CategoryType = "income"
	TypeExpense CategoryType = "expense"
)

// IsValidCategoryType reports whether the given string is a known category type
func IsValidCategoryType(t string) bool {
	return t == string(TypeIncome) || t == string(TypeExpense)
}

// Category represents a user-defined grouping for transactions.
// Uniqueness per user is keyed on (lowercased name, type); the key is
// soft at the application level and additionally backed by a unique
// index created in migration.
type Category struct {
	ID        string       // UUID assigned on insert
	UserID    string       // Owning user's identifier
	Name      string       // Display name, case preserved
	Type      CategoryType // income or expense
	Color     string       // Hex color used by clients
	Icon      string       // Icon name used by clients
	CreatedAt time.Time    // When the category was created
}

// NewCategory creates a new category with basic validation
func NewCategory(
	userID string,
	name string,
	categoryType string,
	color string,
	icon string,
	timeProvider coreport.TimeProvider,
) (*Category, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.ErrInvalidUserID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.ErrInvalidCategoryName
	}
	if !IsValidCategoryType(categoryType) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCategoryType, categoryType)
	}

	return &Category{
		UserID:    userID,
		Name:      name,
		Type:      CategoryType(categoryType),
		Color:     color,
		Icon:      icon,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// Key returns the deduplication key for this category
func (c *Category) Key() string {
	return CategoryKey(c.Name, string(c.Type))
}

// CategoryKey builds the (lowercased name, type) deduplication key used by
// the seeding protocol and duplicate checks
func CategoryKey(name, categoryType string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "::" + categoryType
}

// CategoryPair is a minimal projection of a category used when computing
// the set difference against the default set
type CategoryPair struct {
	Name string
	Type string
}

// Key returns the deduplication key for this pair
func (p CategoryPair) Key() string {
	return CategoryKey(p.Name, p.Type)
}
