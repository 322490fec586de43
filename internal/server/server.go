package server

import (
	"fmt"
	"net/http"
	"time"

	"catalog-viewer/internal/config"
	"catalog-viewer/internal/datasource"
	custommiddleware "catalog-viewer/internal/middleware"
	"catalog-viewer/internal/service"
	"catalog-viewer/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client
}

// NewServer wires the catalog routes around source. redisClient may be nil,
// in which case requests are not rate limited.
func NewServer(cfg *config.Config, logger *zap.Logger, source datasource.ProductSource, redisClient *redis.Client) *Server {
	router := NewRouter(cfg, logger, source, redisClient)

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: cfg.Catalog.Timeout + 20*time.Second,
		},
		config: cfg,
		logger: logger,
		redis:  redisClient,
	}
}

// NewRouter builds the chi router with middleware and catalog routes
func NewRouter(cfg *config.Config, logger *zap.Logger, source datasource.ProductSource, redisClient *redis.Client) chi.Router {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.IsDevelopment()))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	catalogService := service.NewCatalogService(source)
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)

	router.Group(func(r chi.Router) {
		if redisClient != nil {
			r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.Requests,
				Window:            cfg.RateLimit.Window,
				KeyPrefix:         "catalog_rate_limit",
			}, logger))
		}
		catalogHandler.RegisterRoutes(r)
	})

	return router
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
