package dto

import (
	"time"

	"github.com/uangku/uangku-backend/internal/domain/entity"
)

// CategoryRequest is the payload for creating or updating a category
type CategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type" binding:"required"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// CategoryResponse is the API representation of a category
type CategoryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCategoryResponse maps a category entity to its API representation
func NewCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		UserID:    category.UserID,
		Name:      category.Name,
		Type:      string(category.Type),
		Color:     category.Color,
		Icon:      category.Icon,
		CreatedAt: category.CreatedAt,
	}
}

// NewCategoryListResponse maps a slice of category entities
func NewCategoryListResponse(categories []*entity.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, NewCategoryResponse(category))
	}
	return responses
}
