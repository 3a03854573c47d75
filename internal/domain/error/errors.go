package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidCategoryType = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidUserID       = 4003
	CodeDuplicateCategory   = 4004
	CodeInvalidDate         = 4005
	CodeInvalidRequest      = 4006
	CodeUnauthorized        = 4010
	CodeForbidden           = 4030
	CodeCategoryNotFound    = 4040
	CodeTransactionNotFound = 4041
	CodeMethodNotAllowed    = 4050

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeConfiguration  = 5001
	CodeUpstreamQuery  = 5002
)

// Base error types
var (
	// ErrUnauthorized is returned when the bearer token is missing or cannot be resolved
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when a valid identity is not on the admin allow-list
	ErrForbidden = errors.New("forbidden")

	// ErrMethodNotAllowed is returned for any method other than the read method
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrServiceKeyMissing is returned when the elevated credential is not configured
	ErrServiceKeyMissing = errors.New("service role key missing")

	// ErrUpstreamQuery is returned when the data store or identity provider rejects a query
	ErrUpstreamQuery = errors.New("upstream query failed")

	// ErrInvalidUserID is returned when the user identifier is empty
	ErrInvalidUserID = errors.New("user ID cannot be empty")

	// ErrInvalidCategoryType is returned when a category or transaction type is not income/expense
	ErrInvalidCategoryType = errors.New("type must be income or expense")

	// ErrInvalidCategoryName is returned when a category name is empty
	ErrInvalidCategoryName = errors.New("category name cannot be empty")

	// ErrInvalidAmount is returned when the amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when the amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrAmountOverflow is returned when the amount is too large and would cause overflow
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrInvalidDate is returned when a transaction date is not a valid calendar date
	ErrInvalidDate = errors.New("invalid transaction date")

	// ErrCategoryNotFound is returned when the requested category doesn't exist for the caller
	ErrCategoryNotFound = errors.New("category not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist for the caller
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDuplicateCategory is returned when a category with the same name and type already exists
	ErrDuplicateCategory = errors.New("category with this name and type already exists")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrMethodNotAllowed):
		return CodeMethodNotAllowed
	case errors.Is(err, ErrServiceKeyMissing):
		return CodeConfiguration
	case errors.Is(err, ErrUpstreamQuery):
		return CodeUpstreamQuery
	case errors.Is(err, ErrInvalidCategoryType), errors.Is(err, ErrInvalidCategoryName):
		return CodeInvalidCategoryType
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount), errors.Is(err, ErrAmountOverflow):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidDate):
		return CodeInvalidDate
	case errors.Is(err, ErrDuplicateCategory):
		return CodeDuplicateCategory
	case errors.Is(err, ErrCategoryNotFound):
		return CodeCategoryNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	default:
		return CodeInternalServer
	}
}

// SeedError represents a failure inside the category seeding protocol.
// Seeding is best-effort, so this error is logged and swallowed rather
// than returned to callers.
type SeedError struct {
	UserID string
	Stage  string
	Err    error
}

// Error implements the error interface for SeedError
func (e *SeedError) Error() string {
	return fmt.Sprintf("category seeding failed for user %s during %s: %v", e.UserID, e.Stage, e.Err)
}

// Unwrap returns the underlying error
func (e *SeedError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *SeedError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "seed_error",
		"user_id":    e.UserID,
		"stage":      e.Stage,
		"error":      e.Err.Error(),
	}
}

// NewSeedError creates a new seeding error for the given stage
func NewSeedError(userID, stage string, err error) error {
	return &SeedError{UserID: userID, Stage: stage, Err: err}
}

// IsUnauthorizedError checks if the error is an authentication failure
func IsUnauthorizedError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbiddenError checks if the error is an authorization failure
func IsForbiddenError(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsDuplicateCategoryError checks if the error is a duplicate category error
func IsDuplicateCategoryError(err error) bool {
	return errors.Is(err, ErrDuplicateCategory)
}
