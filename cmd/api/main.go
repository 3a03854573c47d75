package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	adminUseCase "github.com/uangku/uangku-backend/internal/domain/usecase/admin"
	categoryUseCase "github.com/uangku/uangku-backend/internal/domain/usecase/category"
	"github.com/uangku/uangku-backend/internal/domain/usecase/seeding"
	transactionUseCase "github.com/uangku/uangku-backend/internal/domain/usecase/transaction"

	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/api/handler"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/api/routes"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/database"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/database/migration"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/identity"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/logger"
	"github.com/uangku/uangku-backend/internal/infrastructure/adapter/repository"
	timeProvider "github.com/uangku/uangku-backend/internal/infrastructure/adapter/time"
	"github.com/uangku/uangku-backend/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(
		cfg.Environment == config.Production,
		coreport.ParseLogLevel(cfg.Logger.Level),
	)
	defer func() { _ = appLogger.Flush() }()

	// Setup database configuration
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = dbManager.Close() }()

	// Run migrations
	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(dbManager.DB(), dbManager.GetErrorMapper(), appLogger)
	transactionRepo := repository.NewTransactionRepository(dbManager.DB(), dbManager.GetErrorMapper(), appLogger)

	// Identity provider adapter
	identityProvider := identity.NewGoTrueProvider(identity.Config{
		BaseURL:        cfg.Identity.BaseURL,
		AnonKey:        cfg.Identity.AnonKey,
		ServiceRoleKey: cfg.Identity.ServiceRoleKey,
		JWTSecret:      cfg.Identity.JWTSecret,
		Timeout:        cfg.Identity.Timeout,
	}, appLogger)

	// Initialize use cases
	seeder := seeding.NewCoordinator(categoryRepo, tp, appLogger)
	categoryService := categoryUseCase.NewService(categoryRepo, tp, appLogger)
	transactionService := transactionUseCase.NewService(transactionRepo, categoryRepo, tp, appLogger)
	adminService := adminUseCase.NewService(
		identityProvider,
		transactionRepo,
		adminUseCase.ParseAllowList(cfg.Admin.Emails),
		identityProvider.HasServiceKey(),
		appLogger,
	)

	// Initialize API handlers
	bootstrapHandler := handler.NewBootstrapHandler(seeder, categoryService, transactionService, appLogger)
	categoryHandler := handler.NewCategoryHandler(categoryService, appLogger)
	transactionHandler := handler.NewTransactionHandler(transactionService, appLogger)
	adminHandler := handler.NewAdminHandler(adminService, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(
		router,
		bootstrapHandler,
		categoryHandler,
		transactionHandler,
		adminHandler,
		identityProvider,
		appLogger,
	)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration
	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or UK_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or UK_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missingConfigs = append(missingConfigs, "database.password (or UK_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or UK_DB_NAME environment variable)")
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Identity provider is required unless local token verification is on
	if cfg.Identity.BaseURL == "" && cfg.Identity.JWTSecret == "" {
		missingConfigs = append(missingConfigs, "identity.baseUrl (or UK_IDENTITY_BASE_URL environment variable)")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	// Logger configuration
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	// Return error with list of missing configurations
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// The gateway is inert without an allow-list; warn rather than fail so
	// the user-facing API still comes up
	if cfg.Admin.Emails == "" {
		log.Println("Warning: admin.emails is empty; admin gateway will reject every caller")
	}

	return nil
}
