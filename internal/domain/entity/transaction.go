package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/uangku/uangku-backend/internal/domain/error"
	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
)

// TransactionDateLayout is the calendar-date format transactions are keyed by
const TransactionDateLayout = "2006-01-02"

// Transaction represents a single income or expense record owned by a user
type Transaction struct {
	ID              string       // UUID assigned on insert
	UserID          string       // Owning user's identifier
	Type            CategoryType // income or expense
	Amount          string       // Amount as a string with 2 decimal places
	AmountInCents   int64        // Amount converted to cents for aggregation
	CategoryID      *string      // Weak reference to a category, may be nil
	Description     string       // Free-form note
	TransactionDate string       // Calendar date, YYYY-MM-DD
	CreatedAt       time.Time    // When the record was created
	Category        *Category    // Embedded category when loaded with a join
}

// NewTransaction creates a new transaction with basic validation
func NewTransaction(
	userID string,
	transactionType string,
	amount string,
	categoryID *string,
	description string,
	transactionDate string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errs.ErrInvalidUserID
	}
	if !IsValidCategoryType(transactionType) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCategoryType, transactionType)
	}

	amountInCents, err := ValidateAndConvertAmount(amount)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransactionDate(transactionDate); err != nil {
		return nil, err
	}

	if categoryID != nil && strings.TrimSpace(*categoryID) == "" {
		categoryID = nil
	}

	return &Transaction{
		UserID:          userID,
		Type:            CategoryType(transactionType),
		Amount:          AmountInCentsToString(amountInCents),
		AmountInCents:   amountInCents,
		CategoryID:      categoryID,
		Description:     strings.TrimSpace(description),
		TransactionDate: transactionDate,
		CreatedAt:       timeProvider.Now(),
	}, nil
}

// ValidateTransactionDate checks that the given string is a real calendar
// date in YYYY-MM-DD form
func ValidateTransactionDate(date string) error {
	if _, err := time.Parse(TransactionDateLayout, date); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInvalidDate, date)
	}
	return nil
}

// InMonth reports whether the transaction falls in the given month key
// ("YYYY-MM")
func (t *Transaction) InMonth(monthKey string) bool {
	return strings.HasPrefix(t.TransactionDate, monthKey)
}

// IsIncome reports whether the transaction adds to the balance
func (t *Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}
