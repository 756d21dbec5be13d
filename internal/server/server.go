package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nuttaponsrpn/Kiki-POS/internal/alert"
	"github.com/nuttaponsrpn/Kiki-POS/internal/config"
	"github.com/nuttaponsrpn/Kiki-POS/internal/database"
	custommiddleware "github.com/nuttaponsrpn/Kiki-POS/internal/middleware"
	"github.com/nuttaponsrpn/Kiki-POS/internal/repository"
	"github.com/nuttaponsrpn/Kiki-POS/internal/service"
	"github.com/nuttaponsrpn/Kiki-POS/internal/session"
	"github.com/nuttaponsrpn/Kiki-POS/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	store  *database.Client
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, store *database.Client, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"store":  store.Health(r.Context()),
		})
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(store)
	orderRepo := repository.NewOrderRepository(store)

	// Initialize shared state and services
	notifier := alert.NewNotifier()
	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(notifier)
	orderService := service.NewOrderService(orderRepo, productRepo, cartService)
	analyticsService := service.NewAnalyticsService(orderRepo)
	authService := service.NewAuthService(service.NewStaticVerifier())

	// Session cookie codec and route guards
	codec := session.NewCodec(cfg.Session.MaxAgeDays)
	guard := custommiddleware.RouteGuard(codec, logger)
	requireSession := custommiddleware.RequireSession(codec, logger)
	requireAdmin := custommiddleware.RequireAdmin(logger)
	loginLimiter := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		KeyPrefix:         "login_rate_limit",
	}, logger)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, codec, logger)
	productHandler := transport.NewProductHandler(catalogService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	cartHandler := transport.NewCartHandler(cartService, catalogService, notifier, logger)
	analyticsHandler := transport.NewAnalyticsHandler(analyticsService, logger)
	pageHandler := transport.NewPageHandler()

	// Register routes
	authHandler.RegisterRoutes(router, loginLimiter)
	productHandler.RegisterRoutes(router, requireSession, requireAdmin)
	orderHandler.RegisterRoutes(router, requireSession)
	cartHandler.RegisterRoutes(router, requireSession)
	analyticsHandler.RegisterRoutes(router, requireSession, requireAdmin)
	pageHandler.RegisterRoutes(router, guard)

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
		store:  store,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error("Failed to close store connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
