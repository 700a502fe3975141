package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "rentledger-backend/internal/api/http"
	"rentledger-backend/internal/config"
	"rentledger-backend/internal/jobs"
	"rentledger-backend/internal/logger"
	"rentledger-backend/internal/repository/postgres"
	"rentledger-backend/internal/scheduler"
	"rentledger-backend/internal/security"
	"rentledger-backend/internal/service"
	"rentledger-backend/internal/storage"
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
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentLedger Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Storage Service
	var blobStore storage.Storage
	var localFiles *storage.LocalStorage
	if cfg.Storage.Type == "s3" {
		logger.Info("Using S3 storage", "endpoint", cfg.Storage.Endpoint, "bucket", cfg.Storage.Bucket)
		blobStore, err = storage.NewS3Storage(cfg.Storage)
		if err != nil {
			logger.Error("Failed to initialize s3 storage", "error", err)
			log.Fatalf("Failed to initialize s3 storage: %v", err)
		}
	} else {
		logger.Info("Using local storage", "upload_dir", cfg.Storage.UploadDir)
		localFiles, err = storage.NewLocalStorage(cfg.Storage)
		if err != nil {
			logger.Error("Failed to initialize local storage", "error", err)
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		blobStore = localFiles
	}

	// Initialize Firebase identity verification (optional)
	var verifier service.IdentityVerifier
	if cfg.Firebase.Enabled {
		verifier, err = service.NewFirebaseVerifier(context.Background(), cfg.Firebase.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize firebase verifier", "error", err)
			log.Fatalf("Failed to initialize firebase verifier: %v", err)
		}
		logger.Info("Firebase identity verification enabled")
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, verifier)
	assetSvc := service.NewAssetService(store.AssetRepository)
	contactSvc := service.NewContactService(store.ContactRepository, blobStore)
	rentalSvc := service.NewRentalService(store.RentalRepository, store.AssetRepository, store.ContactRepository, store.LedgerRepository)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository, store.RentalRepository)
	statementSvc := service.NewStatementService(store.LedgerRepository, store.RentalRepository)
	migrationSvc := service.NewMigrationService(store.MigrationRepository, store.RentalRepository)

	// Initialize HTTP handlers and router
	handlers := httpapi.NewHandlers(authSvc, assetSvc, contactSvc, rentalSvc, ledgerSvc, statementSvc, migrationSvc)
	router := httpapi.NewRouter(handlers, tokenManager, localFiles)

	// Start the scheduler if enabled
	if cfg.Scheduler.Enabled {
		jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{Email: emailSvc}, cfg)
		sched := scheduler.NewScheduler(jobRunner)
		sched.Start()
		defer sched.Stop()
	}

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Shutting down", "signal", fmt.Sprintf("%v", sig))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
