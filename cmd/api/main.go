package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/indigo-retail/pos-api/internal/auth"
	"github.com/indigo-retail/pos-api/internal/config"
	"github.com/indigo-retail/pos-api/internal/database"
	"github.com/indigo-retail/pos-api/internal/http/handler"
	"github.com/indigo-retail/pos-api/internal/http/router"
	"github.com/indigo-retail/pos-api/internal/logger"
	"github.com/indigo-retail/pos-api/internal/repository"
	"github.com/indigo-retail/pos-api/internal/service"
	"github.com/indigo-retail/pos-api/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to run auto-migrations: %w", err)
		}
	}

	if err := database.Seed(db, &cfg.Seed, log); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// Initialize services
	issuer := auth.NewTokenIssuer(&cfg.JWT)
	authService := service.NewAuthService(userRepo, issuer, log)
	productService := service.NewProductService(productRepo, fileStorage, log)
	saleService := service.NewSaleService(saleRepo, db, log)
	uploadService := service.NewUploadService(fileStorage, log)

	// Initialize middleware and handlers
	authMiddleware := auth.NewMiddleware(issuer, log)
	authHandler := handler.NewAuthHandler(authService, log)
	productHandler := handler.NewProductHandler(productService, log)
	saleHandler := handler.NewSaleHandler(saleService, log)
	uploadHandler := handler.NewUploadHandler(uploadService, cfg.Storage.MaxUploadBytes(), log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		authHandler,
		productHandler,
		saleHandler,
		uploadHandler,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
