package server

import (
	"github.com/gin-gonic/gin"

	"pollpulse/internal/config"
	"pollpulse/internal/handler"
	"pollpulse/internal/middleware"
	"pollpulse/internal/redis"
	"pollpulse/internal/services"
	"pollpulse/pkg/logger"
)

type Server struct {
	router *gin.Engine
	cfg    *config.Config
}

type Handlers struct {
	Auth *handler.AuthHandler
	Poll *handler.PollHandler
	Vote *handler.VoteHandler
}

// New builds the gin engine with the middleware chain and route table.
// limiter may be nil, which disables rate limiting.
func New(cfg *config.Config, log *logger.Logger, authService *services.AuthService, h Handlers, limiter *redis.RateLimiter) *Server {
	if cfg.AppMode == logger.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(log))

	registerRoutes(router, authService, h, limiter)

	return &Server{router: router, cfg: cfg}
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Run() error {
	return s.router.Run(":" + s.cfg.AppPort)
}
