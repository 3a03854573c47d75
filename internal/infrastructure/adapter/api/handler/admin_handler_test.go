package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uangku/uangku-backend/internal/domain/entity"
	errs "github.com/uangku/uangku-backend/internal/domain/error"
	"github.com/uangku/uangku-backend/internal/domain/port/persistence"
	usecaseport "github.com/uangku/uangku-backend/internal/domain/port/usecase"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/api/handler"
)

// fakeAdminUseCase scripts the gateway service behind the handler
type fakeAdminUseCase struct {
	adminToken   string
	forbidden    map[string]bool
	usersErr     error
	listErr      error
	users        *usecaseport.AdminUserList
	transactions *usecaseport.AdminTransactionList
	lastFilter   persistence.AdminTransactionFilter
}

func (f *fakeAdminUseCase) Authorize(_ context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, errs.ErrUnauthorized
	}
	if f.forbidden[token] {
		return nil, errs.ErrForbidden
	}
	if token != f.adminToken {
		return nil, errs.ErrUnauthorized
	}
	return &entity.User{ID: "admin-1", Email: "admin@example.com"}, nil
}

func (f *fakeAdminUseCase) ListUsers(_ context.Context, page, perPage int) (*usecaseport.AdminUserList, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	result := *f.users
	// Echo normalized pagination the way the real service does
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 50
	}
	if perPage > 200 {
		perPage = 200
	}
	result.Page = page
	result.PerPage = perPage
	return &result, nil
}

func (f *fakeAdminUseCase) ListTransactions(_ context.Context, filter persistence.AdminTransactionFilter) (*usecaseport.AdminTransactionList, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.transactions, nil
}

func newAdminRouter(fake *fakeAdminUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	adminHandler := handler.NewAdminHandler(fake, nopLogger{})
	router.Any("/functions/v1/admin-users", adminHandler.ListUsers)
	router.Any("/functions/v1/admin-transactions", adminHandler.ListTransactions)
	return router
}

func defaultAdminFake() *fakeAdminUseCase {
	return &fakeAdminUseCase{
		adminToken: "admin-token",
		forbidden:  map[string]bool{"user-token": true},
		users: &usecaseport.AdminUserList{
			Users: []*entity.User{{ID: "user-1", Email: "budi@example.com"}},
			Total: 1,
		},
		transactions: &usecaseport.AdminTransactionList{
			Transactions: []*entity.Transaction{},
			Count:        0,
			Limit:        50,
			Offset:       0,
		},
	}
}

func gatewayRequest(router *gin.Engine, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body["error"]
}

func TestGatewayPreflightAlwaysSucceeds(t *testing.T) {
	router := newAdminRouter(defaultAdminFake())

	for _, path := range []string{"/functions/v1/admin-users", "/functions/v1/admin-transactions"} {
		recorder := gatewayRequest(router, http.MethodOptions, path, "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestGatewayRejectsNonGet(t *testing.T) {
	router := newAdminRouter(defaultAdminFake())

	// Method gate fires before authentication; even a valid admin token
	// cannot mutate through these endpoints
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		recorder := gatewayRequest(router, method, "/functions/v1/admin-users", "admin-token")

		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code, method)
		assert.Equal(t, "Method not allowed", decodeError(t, recorder))
		assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestGatewayAuthentication(t *testing.T) {
	router := newAdminRouter(defaultAdminFake())

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantError  string
	}{
		{"missing token", "", http.StatusUnauthorized, "Unauthorized"},
		{"unknown token", "garbage", http.StatusUnauthorized, "Unauthorized"},
		{"valid token not on allow-list", "user-token", http.StatusForbidden, "Forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := gatewayRequest(router, http.MethodGet, "/functions/v1/admin-users", tt.token)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantError, decodeError(t, recorder))
		})
	}
}

func TestGatewayMissingServiceKey(t *testing.T) {
	fake := defaultAdminFake()
	fake.usersErr = errs.ErrServiceKeyMissing
	router := newAdminRouter(fake)

	recorder := gatewayRequest(router, http.MethodGet, "/functions/v1/admin-users", "admin-token")

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "Service role key not configured", decodeError(t, recorder))
}

func TestGatewayUpstreamFailure(t *testing.T) {
	fake := defaultAdminFake()
	fake.listErr = errs.ErrUpstreamQuery
	router := newAdminRouter(fake)

	recorder := gatewayRequest(router, http.MethodGet, "/functions/v1/admin-transactions", "admin-token")

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotEmpty(t, decodeError(t, recorder))
}

func TestGatewayListUsersResponse(t *testing.T) {
	router := newAdminRouter(defaultAdminFake())

	recorder := gatewayRequest(router, http.MethodGet, "/functions/v1/admin-users?page=2&per_page=500", "admin-token")

	require.Equal(t, http.StatusOK, recorder.Code)
	var body struct {
		Users []struct {
			ID         string `json:"id"`
			Email      string `json:"email"`
			IsVerified bool   `json:"is_verified"`
		} `json:"users"`
		Total   int64 `json:"total"`
		Page    int   `json:"page"`
		PerPage int   `json:"per_page"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Users, 1)
	assert.Equal(t, "budi@example.com", body.Users[0].Email)
	assert.False(t, body.Users[0].IsVerified)
	assert.Equal(t, int64(1), body.Total)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 200, body.PerPage, "per_page above the cap is clamped")
}

func TestGatewayTransactionFilterPassthrough(t *testing.T) {
	fake := defaultAdminFake()
	router := newAdminRouter(fake)

	target := "/functions/v1/admin-transactions?user_id=user-1&type=expense&from=2024-01-01&to=2024-01-31&limit=25&offset=5"
	recorder := gatewayRequest(router, http.MethodGet, target, "admin-token")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, persistence.AdminTransactionFilter{
		UserID: "user-1",
		Type:   "expense",
		From:   "2024-01-01",
		To:     "2024-01-31",
		Limit:  25,
		Offset: 5,
	}, fake.lastFilter)
}

func TestGatewayIgnoresGarbagePagination(t *testing.T) {
	fake := defaultAdminFake()
	router := newAdminRouter(fake)

	recorder := gatewayRequest(router, http.MethodGet, "/functions/v1/admin-transactions?limit=abc&offset=xyz", "admin-token")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 0, fake.lastFilter.Limit)
	assert.Equal(t, 0, fake.lastFilter.Offset)
}
