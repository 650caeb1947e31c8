package server

import (
	"fmt"
	"net/http"

	"product-catalog/internal/config"
	"product-catalog/internal/database"
	custommiddleware "product-catalog/internal/middleware"
	"product-catalog/internal/repository"
	"product-catalog/internal/service"
	"product-catalog/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

// NewServer wires repositories, services and handlers into a chi router
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
		db:     db,
	}

	if cfg.RateLimit.Enabled {
		s.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      s.routes(),
		IdleTimeout:  cfg.Server.IdleTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.ErrorHandlingMiddleware(s.logger))
	router.Use(custommiddleware.LoggingMiddleware(s.logger))
	router.Use(custommiddleware.CORSMiddleware(s.config.CORS, !s.config.Server.IsProduction()))
	if s.redis != nil {
		router.Use(custommiddleware.RateLimitMiddleware(
			s.redis,
			custommiddleware.RateLimitConfigFrom(s.config.RateLimit),
			s.logger,
		))
	}

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusFound)
	})
	router.Get("/health", s.healthHandler)

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(s.db.DB())
	productRepo := repository.NewProductRepository(s.db.DB())

	// Initialize services
	tx := database.NewTransactor(s.db.DB(), s.logger)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo)

	// Initialize handlers
	productHandler := transport.NewProductHandler(
		service.NewRegisterProductInteractor(tx, categoryService, productService, s.logger),
		service.NewSearchProductInteractor(tx, productService),
		s.logger,
	)

	// Register routes
	productHandler.RegisterRoutes(router)

	return router
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := s.db.Health(r.Context())

	status := http.StatusOK
	body := map[string]interface{}{
		"status":   "ok",
		"database": health,
	}
	if health["status"] != "up" {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}

	custommiddleware.RespondWithJSON(w, status, body)
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
