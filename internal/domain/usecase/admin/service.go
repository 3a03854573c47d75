package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/uangku/uangku-backend/internal/domain/entity"
	errs "github.com/uangku/uangku-backend/internal/domain/error"
	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
	"github.com/uangku/uangku-backend/internal/domain/port/identity"
	"github.com/uangku/uangku-backend/internal/domain/port/persistence"
	"github.com/uangku/uangku-backend/internal/domain/port/usecase"
)

// Pagination bounds shared by both privileged listings
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Service is the authorization gateway behind the two privileged read
// endpoints. It holds the only elevated access paths in the process: the
// identity provider's admin listing and the unscoped transaction query.
type Service struct {
	provider        identity.Provider
	transactionRepo persistence.TransactionRepository
	allowList       AllowList
	elevatedReady   bool
	logger          coreport.Logger
}

// NewService creates a new admin gateway service. elevatedReady reflects
// whether the service-level credential was configured at startup; without
// it the query step fails with a configuration error rather than an
// authorization one.
func NewService(
	provider identity.Provider,
	transactionRepo persistence.TransactionRepository,
	allowList AllowList,
	elevatedReady bool,
	logger coreport.Logger,
) *Service {
	if malformed := allowList.Malformed(); len(malformed) > 0 {
		logger.Warn("Allow-list contains entries that do not look like emails", map[string]any{
			"entries": malformed,
		})
	}
	return &Service{
		provider:        provider,
		transactionRepo: transactionRepo,
		allowList:       allowList,
		elevatedReady:   elevatedReady,
		logger:          logger,
	}
}

// Authorize resolves the bearer token to an identity and checks the
// resulting email against the allow-list. Each step gates the next; the
// elevated query paths are never reached on failure.
func (s *Service) Authorize(ctx context.Context, token string) (*entity.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errs.ErrUnauthorized
	}

	user, err := s.provider.Introspect(ctx, token)
	if err != nil {
		s.logger.Debug("Token introspection failed", map[string]any{"error": err.Error()})
		return nil, errs.ErrUnauthorized
	}
	if user == nil || user.Email == "" {
		return nil, errs.ErrUnauthorized
	}

	if !s.allowList.Contains(user.Email) {
		s.logger.Warn("Admin endpoint called by non-admin identity", map[string]any{
			"user_id": user.ID,
		})
		return nil, errs.ErrForbidden
	}

	return user, nil
}

// ListUsers returns one page of identity-provider users with pagination
// normalized: page floors at 1, per_page defaults to 50 and clamps at 200
func (s *Service) ListUsers(ctx context.Context, page, perPage int) (*usecase.AdminUserList, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	if !s.elevatedReady {
		return nil, errs.ErrServiceKeyMissing
	}

	result, err := s.provider.ListUsers(ctx, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrUpstreamQuery, err.Error())
	}

	return &usecase.AdminUserList{
		Users:   result.Users,
		Total:   result.Total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// ListTransactions returns cross-user transactions matching the filter,
// with limit defaulting to 50 and clamping at 200 and offset flooring at 0
func (s *Service) ListTransactions(ctx context.Context, filter persistence.AdminTransactionFilter) (*usecase.AdminTransactionList, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	if !s.elevatedReady {
		return nil, errs.ErrServiceKeyMissing
	}

	transactions, count, err := s.transactionRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrUpstreamQuery, err.Error())
	}

	return &usecase.AdminTransactionList{
		Transactions: transactions,
		Count:        count,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	}, nil
}
