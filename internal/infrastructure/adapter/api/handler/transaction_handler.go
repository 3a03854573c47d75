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

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService usecaseport.TransactionUseCase
	logger             coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(transactionService usecaseport.TransactionUseCase, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// ListTransactions handles GET /api/v1/transactions
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondError(c, domainerr.ErrUnauthorized)
		return
	}

	transactions, err := h.transactionService.ListTransactions(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionListResponse(transactions))
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondError(c, domainerr.ErrUnauthorized)
		return
	}

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid transaction request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), caller.ID, usecaseport.TransactionInput{
		Type:            req.Type,
		Amount:          req.Amount,
		CategoryID:      req.CategoryID,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTransactionResponse(transaction))
}

// UpdateTransaction handles PUT /api/v1/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondError(c, domainerr.ErrUnauthorized)
		return
	}

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request.Context(), caller.ID, c.Param("id"), usecaseport.TransactionInput{
		Type:            req.Type,
		Amount:          req.Amount,
		CategoryID:      req.CategoryID,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(transaction))
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondError(c, domainerr.ErrUnauthorized)
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), caller.ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSummary handles GET /api/v1/summary
func (h *TransactionHandler) GetSummary(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondError(c, domainerr.ErrUnauthorized)
		return
	}

	summary, err := h.transactionService.Summarize(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSummaryResponse(summary))
}
