// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"company_portal_backend/internal/address"
	"company_portal_backend/internal/auth"
	"company_portal_backend/internal/company"
	"company_portal_backend/internal/config"
	"company_portal_backend/internal/jobs"
	"company_portal_backend/internal/middleware"
	"company_portal_backend/internal/profile"
	"company_portal_backend/internal/session"
	"company_portal_backend/internal/shared"
	"company_portal_backend/internal/user"

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
	authHandler    *auth.Handler
	companyHandler *company.Handler
	profileHandler *profile.Handler
	addressHandler *address.Handler

	// Jobs
	sessionCleanupJob *jobs.SessionCleanupJob

	// Services needed at startup
	companyService company.Service
	gate           *session.Gate
	gateSub        *session.Subscription
	profileRepo    user.Repository

	// Middleware instances
	authMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *auth.Handler,
	companyHandler *company.Handler,
	profileHandler *profile.Handler,
	addressHandler *address.Handler,
	sessionCleanupJob *jobs.SessionCleanupJob,
	companyService company.Service,
	gate *session.Gate,
	profileRepo user.Repository,
	backend shared.AuthBackend,
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
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(backend, logger.Named("AuthMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Company Portal API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1, authMW)
	companyHandler.RegisterRoutes(v1)
	profileHandler.RegisterRoutes(v1, authMW)
	addressHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:        httpServer,
		router:            router,
		cfg:               cfg,
		logger:            logger,
		authHandler:       authHandler,
		companyHandler:    companyHandler,
		profileHandler:    profileHandler,
		addressHandler:    addressHandler,
		sessionCleanupJob: sessionCleanupJob,
		companyService:    companyService,
		gate:              gate,
		profileRepo:       profileRepo,
		authMW:            authMW,
	}, nil
}

func (s *Server) Start() error {
	// The gate starts in a loading state; the server has no prior session
	// to restore, so bootstrap with no identity.
	s.gate.Bootstrap(nil)
	s.gateSub = s.gate.Subscribe()
	go s.watchSessionEvents()

	if s.cfg.SeedCompanies {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := s.companyService.SeedDefaults(ctx); err != nil {
			s.logger.Error("Failed to seed company directory", zap.Error(err))
		}
		cancel()
	}

	if s.sessionCleanupJob != nil {
		if err := s.sessionCleanupJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start session cleanup job", zap.Error(err))
		}
	} else {
		s.logger.Info("Session cleanup job is not configured, skipping start.")
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

// watchSessionEvents drains the gate subscription for the life of the
// process, logging each auth state change and stamping last_login_at on
// sign-in events.
func (s *Server) watchSessionEvents() {
	for notification := range s.gateSub.C {
		fields := []zap.Field{zap.String("event", string(notification.Event))}
		if notification.Identity != nil {
			fields = append(fields, zap.String("uid", notification.Identity.UID))
		}
		s.logger.Info("Auth state changed", fields...)

		if notification.Identity == nil {
			continue
		}
		switch notification.Event {
		case session.EventSignedIn, session.EventSignedUp:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.profileRepo.StampLastLogin(ctx, notification.Identity.UID, time.Now().UTC()); err != nil {
				s.logger.Warn("Failed to stamp last login",
					zap.String("uid", notification.Identity.UID), zap.Error(err))
			}
			cancel()
		}
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.sessionCleanupJob != nil {
		s.sessionCleanupJob.Stop()
	}
	if s.gateSub != nil {
		s.gateSub.Unsubscribe()
	}
	return s.httpServer.Shutdown(ctx)
}
