package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/uangku/uangku-backend/internal/domain/entity"
	errs "github.com/uangku/uangku-backend/internal/domain/error"
	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
	identityport "github.com/uangku/uangku-backend/internal/domain/port/identity"
)

// Config holds the connection settings for the hosted identity service
type Config struct {
	// BaseURL is the root of the identity API, e.g. https://project.example.co
	BaseURL string
	// AnonKey is the low-privilege API key sent with token introspection
	AnonKey string
	// ServiceRoleKey is the elevated credential required for the admin user
	// listing. May be empty; elevated calls then fail with
	// ErrServiceKeyMissing.
	ServiceRoleKey string
	// JWTSecret enables local HS256 verification of access tokens before
	// any network call. Empty disables the local check.
	JWTSecret string
	// Timeout bounds each upstream request
	Timeout time.Duration
}

// GoTrueProvider resolves bearer tokens and lists users against a
// GoTrue-compatible identity API
type GoTrueProvider struct {
	config     Config
	httpClient *http.Client
	logger     coreport.Logger
}

// NewGoTrueProvider creates a new GoTrueProvider instance
func NewGoTrueProvider(config Config, logger coreport.Logger) *GoTrueProvider {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoTrueProvider{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// HasServiceKey reports whether the elevated credential is configured
func (p *GoTrueProvider) HasServiceKey() bool {
	return p.config.ServiceRoleKey != ""
}

// gotrueUser is the wire shape of a user record in the identity API
type gotrueUser struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	CreatedAt        time.Time  `json:"created_at"`
	LastSignInAt     *time.Time `json:"last_sign_in_at"`
	EmailConfirmedAt *time.Time `json:"email_confirmed_at"`
}

func (u *gotrueUser) toEntity() *entity.User {
	return &entity.User{
		ID:               u.ID,
		Email:            u.Email,
		CreatedAt:        u.CreatedAt,
		LastSignInAt:     u.LastSignInAt,
		EmailConfirmedAt: u.EmailConfirmedAt,
	}
}

// Introspect resolves a bearer token to the user it belongs to
func (p *GoTrueProvider) Introspect(ctx context.Context, token string) (*entity.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errs.ErrUnauthorized
	}

	// Verify the access token locally when a secret is configured; the
	// claims carry everything introspection would return, so no network
	// round trip is needed
	if p.config.JWTSecret != "" {
		user, err := p.verifyLocally(token)
		if err != nil {
			p.logger.Debug("Local token verification failed", map[string]any{
				"error": err.Error(),
			})
			return nil, errs.ErrUnauthorized
		}
		return user, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.BaseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}
	req.Header.Set("apikey", p.config.AnonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Warn("Token introspection request failed", map[string]any{
			"error": err.Error(),
		})
		return nil, errs.ErrUnauthorized
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		p.logger.Debug("Token introspection rejected", map[string]any{
			"status": resp.StatusCode,
		})
		return nil, errs.ErrUnauthorized
	}

	var wireUser gotrueUser
	if err := json.NewDecoder(resp.Body).Decode(&wireUser); err != nil {
		return nil, errs.ErrUnauthorized
	}
	if wireUser.ID == "" {
		return nil, errs.ErrUnauthorized
	}

	return wireUser.toEntity(), nil
}

// accessClaims is the subset of GoTrue access token claims this system reads
type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// verifyLocally checks the HS256 signature and expiry of the access token
// and builds the user from its claims
func (p *GoTrueProvider) verifyLocally(token string) (*entity.User, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(p.config.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("token is not valid")
	}

	user := &entity.User{
		ID:    claims.Subject,
		Email: claims.Email,
	}
	if claims.IssuedAt != nil {
		user.CreatedAt = claims.IssuedAt.Time
	}
	return user, nil
}

// adminUsersResponse is the wire shape of one page of the admin user listing
type adminUsersResponse struct {
	Users []gotrueUser `json:"users"`
	Total int64        `json:"total"`
}

// ListUsers returns one page of all known users using the elevated credential
func (p *GoTrueProvider) ListUsers(ctx context.Context, page, perPage int) (*identityport.UserPage, error) {
	if !p.HasServiceKey() {
		return nil, errs.ErrServiceKeyMissing
	}

	endpoint := fmt.Sprintf("%s/auth/v1/admin/users?%s", p.config.BaseURL, url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}
	req.Header.Set("apikey", p.config.ServiceRoleKey)
	req.Header.Set("Authorization", "Bearer "+p.config.ServiceRoleKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Error("Admin user listing request failed", map[string]any{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrUpstreamQuery, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		p.logger.Error("Admin user listing rejected by provider", map[string]any{
			"status": resp.StatusCode,
			"body":   string(body),
		})
		return nil, fmt.Errorf("%w: status %d", errs.ErrUpstreamQuery, resp.StatusCode)
	}

	var wirePage adminUsersResponse
	if err := json.NewDecoder(resp.Body).Decode(&wirePage); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrUpstreamQuery, err.Error())
	}

	users := make([]*entity.User, 0, len(wirePage.Users))
	for i := range wirePage.Users {
		users = append(users, wirePage.Users[i].toEntity())
	}

	// Older GoTrue versions omit the total; fall back to the page length
	total := wirePage.Total
	if total == 0 {
		total = int64(len(users))
	}

	return &identityport.UserPage{Users: users, Total: total}, nil
}
