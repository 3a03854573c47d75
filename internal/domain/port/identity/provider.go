package identity

import (
	"context"

	"github.com/uangku/uangku-backend/internal/domain/entity"
)

// UserPage is one page of the identity provider's admin user listing
type UserPage struct {
	Users []*entity.User
	Total int64
}

// Provider abstracts the hosted identity service. Introspect runs with the
// low-privilege credential; ListUsers requires the elevated service
// credential and is only reachable through the admin gateway.
type Provider interface {
	// Introspect resolves a bearer token to the user it belongs to
	//
	// Possible errors:
	// - ErrUnauthorized: if the token is invalid, expired, or carries no email
	Introspect(ctx context.Context, token string) (*entity.User, error)

	// ListUsers returns one page of all known users
	//
	// Possible errors:
	// - ErrServiceKeyMissing: if the elevated credential is not configured
	// - ErrUpstreamQuery: if the provider rejects the request
	ListUsers(ctx context.Context, page, perPage int) (*UserPage, error)
}
