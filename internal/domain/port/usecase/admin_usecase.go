package usecase

import (
	"context"

	"github.com/uangku/uangku-backend/internal/domain/entity"
	"github.com/uangku/uangku-backend/internal/domain/port/persistence"
)

// AdminUserList is the result of the privileged user listing, echoing the
// pagination actually applied
type AdminUserList struct {
	Users   []*entity.User
	Total   int64
	Page    int
	PerPage int
}

// AdminTransactionList is the result of the privileged cross-user
// transaction listing, echoing the pagination actually applied
type AdminTransactionList struct {
	Transactions []*entity.Transaction
	Count        int64
	Limit        int
	Offset       int
}

// AdminUseCase is the authorization gateway for the two privileged read
// endpoints. Authorize gates every query method; the query methods assume
// the caller has already been authorized.
type AdminUseCase interface {
	// Authorize resolves the raw bearer token to an identity and checks it
	// against the administrator allow-list
	//
	// Possible errors:
	// - ErrUnauthorized: empty/unresolvable token or identity without email
	// - ErrForbidden: resolved email is not on the allow-list
	Authorize(ctx context.Context, token string) (*entity.User, error)

	// ListUsers returns one page of identity-provider users. Pagination is
	// normalized: page floors at 1, per_page defaults to 50 and clamps at 200.
	ListUsers(ctx context.Context, page, perPage int) (*AdminUserList, error)

	// ListTransactions returns cross-user transactions matching the filter.
	// Limit defaults to 50 and clamps at 200; offset floors at 0.
	ListTransactions(ctx context.Context, filter persistence.AdminTransactionFilter) (*AdminTransactionList, error)
}
