package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/avatarctic/storefront-catalog/configs"
	"github.com/avatarctic/storefront-catalog/internal/application/services"
	"github.com/avatarctic/storefront-catalog/internal/core/ports"
	"github.com/avatarctic/storefront-catalog/internal/infrastructure/db"
	"github.com/avatarctic/storefront-catalog/internal/infrastructure/health"
	"github.com/avatarctic/storefront-catalog/internal/infrastructure/httpserver"
	"github.com/avatarctic/storefront-catalog/internal/infrastructure/redis"
	"github.com/avatarctic/storefront-catalog/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting storefront catalog service...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabaseWithConfig(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Initialize Redis client
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Repositories: Postgres source of truth plus the Redis cart store
	productRepo := repositories.NewProductRepository(database, logger)
	categoryRepo := repositories.NewCategoryRepository(database, logger)
	rateRepo := repositories.NewRateRepository(database)
	cartRepo := repositories.NewCartRedisRepository(redisClient, cfg.Cache.CartPrefix, cfg.Cache.CartTTL, logger)

	// Page cache layer fronting the rendered storefront
	pageCache := redis.NewPageCache(redisClient, cfg.Cache.PagePrefix, logger)

	// Services own the process-local TTL cache cells
	catalogService := services.NewCatalogService(productRepo, categoryRepo, cfg.Cache.ProductTTL, cfg.Cache.CategoryTTL, logger)
	currencyService := services.NewCurrencyService(rateRepo, cfg.Cache.RateTTL, logger)
	cartService := services.NewCartService(cartRepo, catalogService, currencyService, logger)
	invalidationService := services.NewInvalidationService(pageCache, catalogService, logger)

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewRedisHealthChecker(redisClient)}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
	}

	deps := httpserver.ServerDeps{
		CatalogService:      catalogService,
		CurrencyService:     currencyService,
		CartService:         cartService,
		InvalidationService: invalidationService,
		HealthCheckers:      hcSlice,
	}
	secrets := httpserver.AuthSecrets{
		InvalidateToken: cfg.Auth.InvalidateToken,
		JWTSecret:       cfg.Auth.JWTSecret,
	}

	server := httpserver.NewServer(serverConfig, secrets, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
