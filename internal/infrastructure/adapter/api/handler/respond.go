package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerr "github.com/uangku/uangku-backend/internal/domain/error"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/api/dto"
)

// httpStatus maps a domain error to its HTTP status code
func httpStatus(err error) int {
	switch {
	case domainerr.IsUnauthorizedError(err):
		return http.StatusUnauthorized
	case domainerr.IsForbiddenError(err):
		return http.StatusForbidden
	case errors.Is(err, domainerr.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case domainerr.IsDuplicateCategoryError(err):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrInvalidCategoryType),
		errors.Is(err, domainerr.ErrInvalidCategoryName),
		errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrNegativeAmount),
		errors.Is(err, domainerr.ErrAmountOverflow),
		errors.Is(err, domainerr.ErrInvalidUserID),
		errors.Is(err, domainerr.ErrInvalidDate),
		errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standardized error payload for a domain error.
// Server-side failures are masked with a generic message.
func respondError(c *gin.Context, err error) {
	status := httpStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}
