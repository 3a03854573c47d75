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

// BootstrapHandler handles the session bootstrap endpoint. Bootstrap runs
// the default-category seeding, then loads everything the client shows on
// first render.
type BootstrapHandler struct {
	seeder             usecaseport.Seeder
	categoryService    usecaseport.CategoryUseCase
	transactionService usecaseport.TransactionUseCase
	logger             coreport.Logger
}

// NewBootstrapHandler creates a new bootstrap handler instance
func NewBootstrapHandler(
	seeder usecaseport.Seeder,
	categoryService usecaseport.CategoryUseCase,
	transactionService usecaseport.TransactionUseCase,
	logger coreport.Logger,
) *BootstrapHandler {
	return &BootstrapHandler{
		seeder:             seeder,
		categoryService:    categoryService,
		transactionService: transactionService,
		logger:             logger,
	}
}

// Bootstrap handles POST /api/v1/bootstrap
func (h *BootstrapHandler) Bootstrap(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondError(c, domainerr.ErrUnauthorized)
		return
	}

	// Seeding is best-effort; a seeding failure must not break the session
	h.seeder.EnsureDefaults(c.Request.Context(), caller.ID)

	categories, err := h.categoryService.ListCategories(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	transactions, err := h.transactionService.ListTransactions(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BootstrapResponse{
		Categories:   dto.NewCategoryListResponse(categories),
		Transactions: dto.NewTransactionListResponse(transactions),
	})
}
