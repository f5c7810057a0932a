package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/lib/pq"

	httpapi "rental-pricing-backend/internal/api/http"
	"rental-pricing-backend/internal/config"
	"rental-pricing-backend/internal/logger"
	"rental-pricing-backend/internal/pricing"
	"rental-pricing-backend/internal/repository/postgres"
	"rental-pricing-backend/internal/security"
	"rental-pricing-backend/internal/service"
	"rental-pricing-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.InitializeWithOptions(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer logger.Sync()
	logger.Info("Starting Rental Pricing Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Pricing configuration", "default_timezone", cfg.Pricing.DefaultTimezone, "default_language", cfg.Pricing.DefaultLanguage)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Storage Service
	var storageService storage.StorageInterface
	if cfg.Storage.Type == "local" {
		logger.Info("Using local image storage", "upload_dir", cfg.Storage.UploadDir)
		localStorage, err := storage.NewLocalStorageService(cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize local storage", "error", err)
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		storageService = localStorage
	} else {
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not yet implemented", cfg.Storage.Type)
	}

	// Initialize Services
	recalculator := pricing.NewRecalculator(
		store.PricelistRepository,
		pricing.NewPricelistBaseRates(store.PricelistRepository),
		pricing.NewFormatter(),
	)
	orderSvc := service.NewRentalOrderService(
		store.OrderRepository,
		store.OrderLineRepository,
		store.ActivityRepository,
		recalculator,
		cfg.Pricing.DefaultTimezone,
		cfg.Pricing.DefaultLanguage,
	)
	documentSvc := service.NewDocumentService(store.OrderRepository, store.ProductRepository, storageService)
	imageSvc := service.NewProductImageService(store.ProductRepository, storageService)

	router := httpapi.NewRouter(httpapi.Services{
		Orders:       orderSvc,
		Documents:    documentSvc,
		Images:       imageSvc,
		Tokens:       security.NewTokenManager(cfg.JWT.Secret),
		MaxImageSize: cfg.Storage.MaxFileSize << 20,
	})

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("HTTP server stopped. Goodbye!")
}
