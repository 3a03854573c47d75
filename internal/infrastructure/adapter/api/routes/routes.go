package routes

import (
	"github.com/gin-gonic/gin"
	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
	identityport "github.com/uangku/uangku-backend/internal/domain/port/identity"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/api/handler"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	bootstrapHandler *handler.BootstrapHandler,
	categoryHandler *handler.CategoryHandler,
	transactionHandler *handler.TransactionHandler,
	adminHandler *handler.AdminHandler,
	identityProvider identityport.Provider,
	logger coreport.Logger,
) {
	// User-facing API, every route behind bearer-token introspection
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(identityProvider, logger))
	{
		api.POST("/bootstrap", bootstrapHandler.Bootstrap)

		api.GET("/categories", categoryHandler.ListCategories)
		api.POST("/categories", categoryHandler.CreateCategory)
		api.PUT("/categories/:id", categoryHandler.UpdateCategory)
		api.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		api.GET("/transactions", transactionHandler.ListTransactions)
		api.POST("/transactions", transactionHandler.CreateTransaction)
		api.PUT("/transactions/:id", transactionHandler.UpdateTransaction)
		api.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

		api.GET("/summary", transactionHandler.GetSummary)
	}

	// Admin gateway endpoints accept every method; the handler performs the
	// method gate itself so non-GET requests get a JSON 405
	router.Any("/functions/v1/admin-users", adminHandler.ListUsers)
	router.Any("/functions/v1/admin-transactions", adminHandler.ListTransactions)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
