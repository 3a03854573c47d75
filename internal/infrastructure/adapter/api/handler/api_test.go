package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uangku/uangku-backend/internal/domain/entity"
	errs "github.com/uangku/uangku-backend/internal/domain/error"
	identityport "github.com/uangku/uangku-backend/internal/domain/port/identity"
	"github.com/uangku/uangku-backend/internal/domain/port/persistence"
	adminUseCase "github.com/uangku/uangku-backend/internal/domain/usecase/admin"
	categoryUseCase "github.com/uangku/uangku-backend/internal/domain/usecase/category"
	"github.com/uangku/uangku-backend/internal/domain/usecase/seeding"
	transactionUseCase "github.com/uangku/uangku-backend/internal/domain/usecase/transaction"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/api/handler"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/api/routes"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]any) {}
func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Warn(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}
func (nopLogger) Flush() error                 { return nil }

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time                  { return p.now }
func (p *fixedTimeProvider) Since(t time.Time) time.Duration { return p.now.Sub(t) }
func (p *fixedTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// fakeIdentityProvider resolves scripted tokens to users
type fakeIdentityProvider struct {
	tokens map[string]*entity.User
}

func (f *fakeIdentityProvider) Introspect(_ context.Context, token string) (*entity.User, error) {
	if user, ok := f.tokens[token]; ok {
		return user, nil
	}
	return nil, errs.ErrUnauthorized
}

func (f *fakeIdentityProvider) ListUsers(context.Context, int, int) (*identityport.UserPage, error) {
	return &identityport.UserPage{}, nil
}

// memCategoryRepo is a full in-memory CategoryRepository
type memCategoryRepo struct {
	mu     sync.Mutex
	rows   []*entity.Category
	nextID int
}

func (r *memCategoryRepo) ListByUser(_ context.Context, userID string) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.rows {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) ListPairsByUser(_ context.Context, userID string) ([]entity.CategoryPair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pairs []entity.CategoryPair
	for _, c := range r.rows {
		if c.UserID == userID {
			pairs = append(pairs, entity.CategoryPair{Name: c.Name, Type: string(c.Type)})
		}
	}
	return pairs, nil
}

func (r *memCategoryRepo) CreateBatch(_ context.Context, categories []*entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range categories {
		if err := r.insert(c); err != nil {
			return err
		}
	}
	return nil
}

func (r *memCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(category)
}

func (r *memCategoryRepo) insert(category *entity.Category) error {
	for _, c := range r.rows {
		if c.UserID == category.UserID && c.Key() == category.Key() {
			return errs.ErrDuplicateCategory
		}
	}
	if category.ID == "" {
		r.nextID++
		category.ID = "cat-" + strconv.Itoa(r.nextID)
	}
	r.rows = append(r.rows, category)
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, userID, categoryID string) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.rows {
		if c.UserID == userID && c.ID == categoryID {
			return c, nil
		}
	}
	return nil, errs.ErrCategoryNotFound
}

func (r *memCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.rows {
		if c.UserID == category.UserID && c.ID == category.ID {
			r.rows[i] = category
			return nil
		}
	}
	return errs.ErrCategoryNotFound
}

func (r *memCategoryRepo) Delete(_ context.Context, userID, categoryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.rows {
		if c.UserID == userID && c.ID == categoryID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return errs.ErrCategoryNotFound
}

// memTransactionRepo is a full in-memory TransactionRepository. Reads join
// the category the way the real repository preloads it.
type memTransactionRepo struct {
	mu         sync.Mutex
	rows       []*entity.Transaction
	nextID     int
	categories *memCategoryRepo
}

func (r *memTransactionRepo) attachCategory(tx *entity.Transaction) {
	if tx.CategoryID == nil || r.categories == nil {
		return
	}
	r.categories.mu.Lock()
	defer r.categories.mu.Unlock()
	for _, c := range r.categories.rows {
		if c.ID == *tx.CategoryID {
			tx.Category = c
			return
		}
	}
}

func (r *memTransactionRepo) ListByUser(_ context.Context, userID string) ([]*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Transaction
	for _, tx := range r.rows {
		if tx.UserID == userID {
			r.attachCategory(tx)
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *memTransactionRepo) Create(_ context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if transaction.ID == "" {
		r.nextID++
		transaction.ID = "tx-" + strconv.Itoa(r.nextID)
	}
	r.rows = append(r.rows, transaction)
	return nil
}

func (r *memTransactionRepo) GetByID(_ context.Context, userID, transactionID string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.rows {
		if tx.UserID == userID && tx.ID == transactionID {
			return tx, nil
		}
	}
	return nil, errs.ErrTransactionNotFound
}

func (r *memTransactionRepo) Update(_ context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, tx := range r.rows {
		if tx.UserID == transaction.UserID && tx.ID == transaction.ID {
			r.rows[i] = transaction
			return nil
		}
	}
	return errs.ErrTransactionNotFound
}

func (r *memTransactionRepo) Delete(_ context.Context, userID, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, tx := range r.rows {
		if tx.UserID == userID && tx.ID == transactionID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return errs.ErrTransactionNotFound
}

func (r *memTransactionRepo) ListAll(_ context.Context, filter persistence.AdminTransactionFilter) ([]*entity.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Transaction
	for _, tx := range r.rows {
		if filter.UserID != "" && tx.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && string(tx.Type) != filter.Type {
			continue
		}
		if filter.From != "" && tx.TransactionDate < filter.From {
			continue
		}
		if filter.To != "" && tx.TransactionDate > filter.To {
			continue
		}
		r.attachCategory(tx)
		matched = append(matched, tx)
	}
	total := int64(len(matched))
	if filter.Offset < len(matched) {
		matched = matched[filter.Offset:]
	} else {
		matched = nil
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

// newAPIRouter wires the full user-facing API over in-memory storage
func newAPIRouter(t *testing.T) *gin.Engine {
	return newAPIRouterWithAdmin(t, "", false)
}

// newAPIRouterWithAdmin additionally enables the admin gateway with the
// given allow-list and an elevated credential when elevated is true
func newAPIRouterWithAdmin(t *testing.T, adminEmails string, elevated bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	categoryRepo := &memCategoryRepo{}
	transactionRepo := &memTransactionRepo{categories: categoryRepo}
	tp := &fixedTimeProvider{now: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)}
	log := nopLogger{}

	identityProvider := &fakeIdentityProvider{tokens: map[string]*entity.User{
		"token-user-1": {ID: "user-1", Email: "budi@example.com"},
		"token-user-2": {ID: "user-2", Email: "sari@example.com"},
		"token-admin":  {ID: "admin-1", Email: "admin@example.com"},
	}}

	seeder := seeding.NewCoordinator(categoryRepo, tp, log)
	categoryService := categoryUseCase.NewService(categoryRepo, tp, log)
	transactionService := transactionUseCase.NewService(transactionRepo, categoryRepo, tp, log)
	adminService := adminUseCase.NewService(identityProvider, transactionRepo, adminUseCase.ParseAllowList(adminEmails), elevated, log)

	router := gin.New()
	routes.SetupRoutes(
		router,
		handler.NewBootstrapHandler(seeder, categoryService, transactionService, log),
		handler.NewCategoryHandler(categoryService, log),
		handler.NewTransactionHandler(transactionService, log),
		handler.NewAdminHandler(adminService, log),
		identityProvider,
		log,
	)
	return router
}

func apiRequest(router *gin.Engine, method, target, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAPIRequiresBearerToken(t *testing.T) {
	router := newAPIRouter(t)

	for _, token := range []string{"", "unknown-token"} {
		recorder := apiRequest(router, http.MethodGet, "/api/v1/categories", token, nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	}
}

func TestBootstrapSeedsDefaultsOnce(t *testing.T) {
	router := newAPIRouter(t)

	var first struct {
		Categories   []map[string]any `json:"categories"`
		Transactions []map[string]any `json:"transactions"`
	}
	recorder := apiRequest(router, http.MethodPost, "/api/v1/bootstrap", "token-user-1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &first))
	assert.Len(t, first.Categories, 4, "all four default tuples seeded")
	assert.Empty(t, first.Transactions)

	// A second bootstrap observes the same set; nothing is inserted twice
	recorder = apiRequest(router, http.MethodPost, "/api/v1/bootstrap", "token-user-1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var second struct {
		Categories []map[string]any `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &second))
	assert.Len(t, second.Categories, 4)

	// Another user gets their own independent defaults
	recorder = apiRequest(router, http.MethodPost, "/api/v1/bootstrap", "token-user-2", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &second))
	assert.Len(t, second.Categories, 4)
}

func TestTransactionLifecycleThroughAPI(t *testing.T) {
	router := newAPIRouter(t)

	// Bootstrap to obtain a seeded category
	recorder := apiRequest(router, http.MethodPost, "/api/v1/bootstrap", "token-user-1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var bootstrap struct {
		Categories []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &bootstrap))
	require.Len(t, bootstrap.Categories, 4)

	var expenseCategoryID string
	for _, c := range bootstrap.Categories {
		if c.Name == "Ngopi" && c.Type == "expense" {
			expenseCategoryID = c.ID
		}
	}
	require.NotEmpty(t, expenseCategoryID)

	// Create a transaction against the seeded category
	recorder = apiRequest(router, http.MethodPost, "/api/v1/transactions", "token-user-1", map[string]any{
		"type":             "expense",
		"amount":           "25000.50",
		"category_id":      expenseCategoryID,
		"description":      "kopi pagi",
		"transaction_date": "2024-01-05",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	var created struct {
		ID            string `json:"id"`
		AmountInCents int64  `json:"amount_in_cents"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, int64(2500050), created.AmountInCents)

	// The other user cannot see or delete it
	recorder = apiRequest(router, http.MethodGet, "/api/v1/transactions", "token-user-2", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "[]", recorder.Body.String())

	recorder = apiRequest(router, http.MethodDelete, "/api/v1/transactions/"+created.ID, "token-user-2", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// The summary reflects the spend
	recorder = apiRequest(router, http.MethodGet, "/api/v1/summary", "token-user-1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var summary struct {
		Balance      string `json:"balance"`
		MonthExpense string `json:"month_expense"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &summary))
	assert.Equal(t, "-25000.50", summary.Balance)
	assert.Equal(t, "25000.50", summary.MonthExpense)

	// The owner deletes it
	recorder = apiRequest(router, http.MethodDelete, "/api/v1/transactions/"+created.ID, "token-user-1", nil)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestAdminGatewaySeesUserTransactions(t *testing.T) {
	router := newAPIRouterWithAdmin(t, "admin@example.com", true)

	// A user bootstraps and records a spend against a seeded category
	recorder := apiRequest(router, http.MethodPost, "/api/v1/bootstrap", "token-user-1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var bootstrap struct {
		Categories []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &bootstrap))

	var categoryID string
	for _, c := range bootstrap.Categories {
		if c.Name == "Ngopi" && c.Type == "expense" {
			categoryID = c.ID
		}
	}
	require.NotEmpty(t, categoryID)

	recorder = apiRequest(router, http.MethodPost, "/api/v1/transactions", "token-user-1", map[string]any{
		"type":             "expense",
		"amount":           "12000",
		"category_id":      categoryID,
		"transaction_date": "2024-01-08",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	// An ordinary user is refused by the gateway
	recorder = apiRequest(router, http.MethodGet, "/functions/v1/admin-transactions", "token-user-1", nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// The administrator sees the transaction with its category joined in
	recorder = apiRequest(router, http.MethodGet,
		"/functions/v1/admin-transactions?user_id=user-1&type=expense", "token-admin", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var listing struct {
		Transactions []struct {
			UserID        string `json:"user_id"`
			AmountInCents int64  `json:"amount_in_cents"`
			Category      *struct {
				Name string `json:"name"`
			} `json:"category"`
		} `json:"transactions"`
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &listing))
	require.Equal(t, int64(1), listing.Count)
	require.Len(t, listing.Transactions, 1)
	assert.Equal(t, "user-1", listing.Transactions[0].UserID)
	assert.Equal(t, int64(1200000), listing.Transactions[0].AmountInCents)
	require.NotNil(t, listing.Transactions[0].Category)
	assert.Equal(t, "Ngopi", listing.Transactions[0].Category.Name)
}

func TestCategoryEndpointsEnforceDuplicatesAndOwnership(t *testing.T) {
	router := newAPIRouter(t)

	recorder := apiRequest(router, http.MethodPost, "/api/v1/categories", "token-user-1", map[string]any{
		"name": "Makan", "type": "expense", "color": "#fb7185", "icon": "Utensils",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))

	// Case-insensitive duplicate is a conflict
	recorder = apiRequest(router, http.MethodPost, "/api/v1/categories", "token-user-1", map[string]any{
		"name": "MAKAN", "type": "expense",
	})
	assert.Equal(t, http.StatusConflict, recorder.Code)

	// Another user cannot update it
	recorder = apiRequest(router, http.MethodPut, "/api/v1/categories/"+created.ID, "token-user-2", map[string]any{
		"name": "Hijacked", "type": "expense",
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// Invalid type is a bad request
	recorder = apiRequest(router, http.MethodPost, "/api/v1/categories", "token-user-1", map[string]any{
		"name": "Tabungan", "type": "savings",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
