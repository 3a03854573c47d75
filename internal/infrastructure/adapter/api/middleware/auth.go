package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/uangku/uangku-backend/internal/domain/entity"
	domainerr "github.com/uangku/uangku-backend/internal/domain/error"
	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
	identityport "github.com/uangku/uangku-backend/internal/domain/port/identity"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/api/dto"
)

// ContextUserKey is the gin context key holding the authenticated caller
const ContextUserKey = "authenticated_user"

// ExtractBearerToken pulls the token out of an Authorization header,
// stripping the Bearer prefix case-insensitively and trimming whitespace
func ExtractBearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 7 && strings.EqualFold(header[:7], "Bearer ") {
		header = header[7:]
	}
	return strings.TrimSpace(header)
}

// Auth middleware resolves the bearer token through the identity provider
// and stores the caller on the request context. Requests without a
// resolvable identity never reach the handler.
func Auth(provider identityport.Provider, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
				Message: "Unauthorized",
			})
			return
		}

		user, err := provider.Introspect(c.Request.Context(), token)
		if err != nil {
			logger.Debug("Bearer token rejected", map[string]any{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
				Message: "Unauthorized",
			})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CallerFromContext returns the authenticated user stored by Auth
func CallerFromContext(c *gin.Context) (*entity.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*entity.User)
	return user, ok
}
