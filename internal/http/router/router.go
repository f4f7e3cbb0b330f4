package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/indigo-retail/pos-api/internal/auth"
	"github.com/indigo-retail/pos-api/internal/config"
	"github.com/indigo-retail/pos-api/internal/database"
	"github.com/indigo-retail/pos-api/internal/http/handler"
	"github.com/indigo-retail/pos-api/internal/http/middleware"
)

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	db             *gorm.DB
	authMiddleware *auth.Middleware
	authHandler    *handler.AuthHandler
	productHandler *handler.ProductHandler
	saleHandler    *handler.SaleHandler
	uploadHandler  *handler.UploadHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	saleHandler *handler.SaleHandler,
	uploadHandler *handler.UploadHandler,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		authMiddleware: authMiddleware,
		authHandler:    authHandler,
		productHandler: productHandler,
		saleHandler:    saleHandler,
		uploadHandler:  uploadHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
		})
	})

	// Serve locally stored uploads
	if rt.cfg.Storage.Mode == "local" {
		fileServer := http.FileServer(http.Dir(rt.cfg.Storage.LocalBasePath))
		r.Handle(rt.cfg.Storage.LocalBaseURL+"/*", http.StripPrefix(rt.cfg.Storage.LocalBaseURL, fileServer))
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes (no auth required)
		r.Group(func(r chi.Router) {
			if rt.cfg.RateLimit.Enabled {
				r.Use(httprate.LimitByIP(rt.cfg.RateLimit.LoginPerMinute, time.Minute))
			}
			r.Post("/auth/login", rt.authHandler.Login)
		})

		// Products
		r.Route("/products", func(r chi.Router) {
			r.Get("/", rt.productHandler.List)
			r.Post("/", rt.productHandler.Create)
			r.Get("/{id}", rt.productHandler.Get)
			r.Put("/{id}", rt.productHandler.Update)
			r.Delete("/{id}", rt.productHandler.Delete)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Sales
			r.Route("/sales", func(r chi.Router) {
				r.Get("/", rt.saleHandler.List)
				r.Post("/", rt.saleHandler.Create)
				r.Get("/report", rt.saleHandler.Report)
				r.Get("/{id}", rt.saleHandler.Get)
				r.Delete("/{id}", rt.saleHandler.Delete)
			})

			// Image uploads
			r.Post("/blob/upload", rt.uploadHandler.Upload)
		})
	})

	return r
}
