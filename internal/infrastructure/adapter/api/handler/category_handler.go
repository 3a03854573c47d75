package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerr "github.com/uangku/uangku-backend/internal/domain/error"
	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
	usecaseport "github.com/uangku/uangku-backend/internal/domain/port/usecase"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/api/dto"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/api/middleware"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService usecaseport.CategoryUseCase
	logger          coreport.Logger
}

// NewCategoryHandler creates a new category handler instance
func NewCategoryHandler(categoryService usecaseport.CategoryUseCase, logger coreport.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// ListCategories handles GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondError(c, domainerr.ErrUnauthorized)
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoryListResponse(categories))
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondError(c, domainerr.ErrUnauthorized)
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid category request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), caller.ID, usecaseport.CategoryInput{
		Name:  req.Name,
		Type:  req.Type,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCategoryResponse(category))
}

// UpdateCategory handles PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondError(c, domainerr.ErrUnauthorized)
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), caller.ID, c.Param("id"), usecaseport.CategoryInput{
		Name:  req.Name,
		Type:  req.Type,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoryResponse(category))
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondError(c, domainerr.ErrUnauthorized)
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), caller.ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
