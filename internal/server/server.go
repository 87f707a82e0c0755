package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"storefront-adapter/internal/cache"
	"storefront-adapter/internal/config"
	custommiddleware "storefront-adapter/internal/middleware"
	"storefront-adapter/internal/repository"
	"storefront-adapter/internal/service"
	"storefront-adapter/internal/shopify"
	"storefront-adapter/internal/source"
	"storefront-adapter/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

// NewServer wires the selected catalog/cart source, the cache store and the
// HTTP surface. db and redisClient may be nil when the configuration does
// not call for them.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Select the backend the services read from
	var (
		catalogSource source.CatalogSource
		cartSource    source.CartSource
	)
	switch cfg.Server.Source {
	case config.SourceShopify:
		client := shopify.NewClient(cfg.Shopify, logger)
		catalogSource, cartSource = client, client
	case config.SourcePostgres:
		catalog := repository.NewCatalog(db)
		catalogSource, cartSource = catalog, repository.NewCartStore(db)
	default:
		fixture := source.NewFixture()
		catalogSource, cartSource = fixture, fixture
	}

	// Cache store: tag-indexed Redis when enabled, otherwise disabled
	var store cache.Store = cache.Noop{}
	if cfg.Cache.Enabled && redisClient != nil {
		ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		store = cache.NewRedisStore(redisClient, ttl, logger)
	}

	// Initialize services
	catalogService := service.NewCatalogService(catalogSource, store, cfg.Shopify.StoreURL(), logger)
	cartService := service.NewCartService(cartSource, logger)

	// Initialize handlers
	storefrontHandler := transport.NewStorefrontHandler(catalogService, cartService, logger)
	revalidateHandler := transport.NewRevalidateHandler(store, cfg.Shopify.RevalidationSecret, logger)

	// The webhook route gets rate limiting when Redis is available
	var rateLimit func(http.Handler) http.Handler
	if redisClient != nil {
		rateLimit = custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 60,
			Window:            time.Minute,
			KeyPrefix:         "revalidate_rate_limit",
		}, logger)
	}

	// Register routes
	storefrontHandler.RegisterRoutes(router)
	revalidateHandler.RegisterRoutes(router, rateLimit)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
