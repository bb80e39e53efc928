package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pollpulse/internal/middleware"
	"pollpulse/internal/redis"
	"pollpulse/internal/services"
)

func registerRoutes(router *gin.Engine, authService *services.AuthService, h Handlers, limiter *redis.RateLimiter) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware(limiter))
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/profile", middleware.AuthMiddleware(authService), h.Auth.Profile)
	}

	polls := v1.Group("/polls")
	{
		// Read paths are public; results stay viewable for inactive
		// and expired polls.
		polls.GET("", h.Poll.List)
		polls.GET("/:id", h.Poll.GetByID)
		polls.GET("/:id/results", h.Vote.Results)

		// Voting is open to anonymous clients; the optional auth
		// middleware only decides which voter identity applies.
		polls.POST("/:id/vote",
			middleware.VoteRateLimitMiddleware(limiter),
			middleware.OptionalAuthMiddleware(authService),
			h.Vote.CastVote)

		// Mutations require an owner.
		authed := polls.Group("")
		authed.Use(middleware.AuthMiddleware(authService))
		{
			authed.POST("", h.Poll.Create)
			authed.PUT("/:id", h.Poll.Update)
			authed.DELETE("/:id", h.Poll.Delete)
		}
	}
}
