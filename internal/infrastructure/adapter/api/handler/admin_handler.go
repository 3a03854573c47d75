package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	domainerr "github.com/uangku/uangku-backend/internal/domain/error"
	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
	"github.com/uangku/uangku-backend/internal/domain/port/persistence"
	usecaseport "github.com/uangku/uangku-backend/internal/domain/port/usecase"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/api/dto"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/api/middleware"
)

// AdminHandler serves the two privileged read endpoints behind the
// authorization gateway. Both endpoints are registered for every HTTP
// method; the handler performs the method gate itself so that non-GET
// requests receive 405 instead of gin's default 404.
type AdminHandler struct {
	adminService usecaseport.AdminUseCase
	logger       coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(adminService usecaseport.AdminUseCase, logger coreport.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// gate runs the shared request pipeline: CORS preflight, method check and
// allow-list authorization. It reports whether the caller may proceed.
func (h *AdminHandler) gate(c *gin.Context) bool {
	middleware.ApplyCORSHeaders(c)

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusOK)
		return false
	}

	if c.Request.Method != http.MethodGet {
		c.JSON(http.StatusMethodNotAllowed, dto.GatewayErrorResponse{Error: "Method not allowed"})
		return false
	}

	token := middleware.ExtractBearerToken(c.GetHeader("Authorization"))
	admin, err := h.adminService.Authorize(c.Request.Context(), token)
	if err != nil {
		if domainerr.IsForbiddenError(err) {
			c.JSON(http.StatusForbidden, dto.GatewayErrorResponse{Error: "Forbidden"})
		} else {
			c.JSON(http.StatusUnauthorized, dto.GatewayErrorResponse{Error: "Unauthorized"})
		}
		return false
	}

	h.logger.Info("Admin request authorized", map[string]any{
		"admin_email": admin.Email,
		"path":        c.Request.URL.Path,
	})
	return true
}

// respondGatewayError writes the JSON error shape for a failed elevated query
func (h *AdminHandler) respondGatewayError(c *gin.Context, err error) {
	if errors.Is(err, domainerr.ErrServiceKeyMissing) {
		c.JSON(http.StatusInternalServerError, dto.GatewayErrorResponse{
			Error: "Service role key not configured",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, dto.GatewayErrorResponse{Error: err.Error()})
}

// ListUsers handles /functions/v1/admin-users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	if !h.gate(c) {
		return
	}

	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", 0)

	result, err := h.adminService.ListUsers(c.Request.Context(), page, perPage)
	if err != nil {
		h.respondGatewayError(c, err)
		return
	}

	users := make([]dto.AdminUserResponse, 0, len(result.Users))
	for _, user := range result.Users {
		users = append(users, dto.NewAdminUserResponse(user))
	}

	c.JSON(http.StatusOK, dto.AdminUsersResponse{
		Users:   users,
		Total:   result.Total,
		Page:    result.Page,
		PerPage: result.PerPage,
	})
}

// ListTransactions handles /functions/v1/admin-transactions
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	if !h.gate(c) {
		return
	}

	filter := persistence.AdminTransactionFilter{
		UserID: c.Query("user_id"),
		Type:   c.Query("type"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Limit:  queryInt(c, "limit", 0),
		Offset: queryInt(c, "offset", 0),
	}

	result, err := h.adminService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.respondGatewayError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AdminTransactionsResponse{
		Transactions: dto.NewTransactionListResponse(result.Transactions),
		Count:        result.Count,
		Limit:        result.Limit,
		Offset:       result.Offset,
	})
}

// queryInt parses an integer query parameter, falling back on absence or
// garbage input
func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
