package dto

import (
	"time"

	"github.com/uangku/uangku-backend/internal/domain/entity"
)

// TransactionRequest is the payload for creating or updating a transaction
type TransactionRequest struct {
	Type            string  `json:"type" binding:"required"`
	Amount          string  `json:"amount" binding:"required"`
	CategoryID      *string `json:"category_id"`
	Description     string  `json:"description"`
	TransactionDate string  `json:"transaction_date" binding:"required"`
}

// TransactionResponse is the API representation of a transaction
type TransactionResponse struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	Type            string            `json:"type"`
	Amount          string            `json:"amount"`
	AmountInCents   int64             `json:"amount_in_cents"`
	CategoryID      *string           `json:"category_id"`
	Description     string            `json:"description"`
	TransactionDate string            `json:"transaction_date"`
	CreatedAt       time.Time         `json:"created_at"`
	Category        *CategoryResponse `json:"category,omitempty"`
}

// NewTransactionResponse maps a transaction entity to its API representation
func NewTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:              transaction.ID,
		UserID:          transaction.UserID,
		Type:            string(transaction.Type),
		Amount:          transaction.Amount,
		AmountInCents:   transaction.AmountInCents,
		CategoryID:      transaction.CategoryID,
		Description:     transaction.Description,
		TransactionDate: transaction.TransactionDate,
		CreatedAt:       transaction.CreatedAt,
	}
	if transaction.Category != nil {
		category := NewCategoryResponse(transaction.Category)
		response.Category = &category
	}
	return response
}

// NewTransactionListResponse maps a slice of transaction entities
func NewTransactionListResponse(transactions []*entity.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		responses = append(responses, NewTransactionResponse(transaction))
	}
	return responses
}

// SummaryResponse carries the derived dashboard statistics
type SummaryResponse struct {
	Balance           string `json:"balance"`
	MonthIncome       string `json:"month_income"`
	MonthExpense      string `json:"month_expense"`
	MonthRemaining    string `json:"month_remaining"`
	EstimatedDaysLeft *int   `json:"estimated_days_left"`
}

// NewSummaryResponse maps a summary entity to its API representation
func NewSummaryResponse(summary *entity.Summary) SummaryResponse {
	return SummaryResponse{
		Balance:           summary.Balance,
		MonthIncome:       summary.MonthIncome,
		MonthExpense:      summary.MonthExpense,
		MonthRemaining:    summary.MonthRemaining,
		EstimatedDaysLeft: summary.EstimatedDaysLeft,
	}
}

// BootstrapResponse is the combined payload returned after session bootstrap
type BootstrapResponse struct {
	Categories   []CategoryResponse    `json:"categories"`
	Transactions []TransactionResponse `json:"transactions"`
}
