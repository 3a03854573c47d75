package dto

import (
	"time"

	"github.com/uangku/uangku-backend/internal/domain/entity"
)

// AdminUserResponse is the gateway's view of an identity-provider user
type AdminUserResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at"`
	IsVerified   bool       `json:"is_verified"`
}

// AdminUsersResponse is one page of the privileged user listing
type AdminUsersResponse struct {
	Users   []AdminUserResponse `json:"users"`
	Total   int64               `json:"total"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
}

// NewAdminUserResponse maps a user entity to its gateway representation
func NewAdminUserResponse(user *entity.User) AdminUserResponse {
	return AdminUserResponse{
		ID:           user.ID,
		Email:        user.Email,
		CreatedAt:    user.CreatedAt,
		LastSignInAt: user.LastSignInAt,
		IsVerified:   user.IsVerified(),
	}
}

// AdminTransactionsResponse is one page of the privileged cross-user
// transaction listing
type AdminTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int64                 `json:"count"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}
