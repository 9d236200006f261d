// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"carmarket_backend/internal/auth"
	"carmarket_backend/internal/car"
	"carmarket_backend/internal/category"
	"carmarket_backend/internal/chat"
	"carmarket_backend/internal/common"
	"carmarket_backend/internal/config"
	"carmarket_backend/internal/jobs"
	"carmarket_backend/internal/middleware"
	"carmarket_backend/internal/order"
	"carmarket_backend/internal/seed"
	"carmarket_backend/internal/swap"
	"carmarket_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	authHandler     *auth.Handler
	userHandler     *user.Handler
	carHandler      *car.Handler
	categoryHandler *category.Handler
	chatHandler     *chat.Handler
	swapHandler     *swap.Handler
	orderHandler    *order.Handler

	// Jobs
	pendingReviewJob *jobs.PendingReviewJob

	seeder *seed.Seeder
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokenService auth.TokenService,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	carHandler *car.Handler,
	categoryHandler *category.Handler,
	chatHandler *chat.Handler,
	swapHandler *swap.Handler,
	orderHandler *order.Handler,
	pendingReviewJob *jobs.PendingReviewJob,
	seeder *seed.Seeder,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Create middleware instances
	authMW := middleware.AuthMiddleware(tokenService, logger.Named("AuthMiddleware"))
	optionalAuthMW := middleware.OptionalAuthMiddleware(tokenService, logger.Named("OptionalAuthMiddleware"))
	adminRoleMW := middleware.RoleAuthMiddleware(common.RoleAdmin)

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "CarMarket API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1, authMW)
	userHandler.RegisterRoutes(v1, authMW, adminRoleMW)
	carHandler.RegisterRoutes(v1, optionalAuthMW, authMW, adminRoleMW)
	categoryHandler.RegisterRoutes(v1)
	chatHandler.RegisterRoutes(v1, authMW)
	swapHandler.RegisterRoutes(v1, authMW)
	orderHandler.RegisterRoutes(v1, authMW, adminRoleMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:       httpServer,
		router:           router,
		cfg:              cfg,
		logger:           logger,
		authHandler:      authHandler,
		userHandler:      userHandler,
		carHandler:       carHandler,
		categoryHandler:  categoryHandler,
		chatHandler:      chatHandler,
		swapHandler:      swapHandler,
		orderHandler:     orderHandler,
		pendingReviewJob: pendingReviewJob,
		seeder:           seeder,
	}, nil
}

func (s *Server) Start() error {
	seedCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := s.seeder.Run(seedCtx); err != nil {
		s.logger.Error("Database preparation failed", zap.Error(err))
		return err
	}

	if s.pendingReviewJob != nil {
		if err := s.pendingReviewJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start pending review job", zap.Error(err))
		}
	} else {
		s.logger.Info("Pending review job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.pendingReviewJob != nil {
		s.pendingReviewJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
