package main

import (
	"context"
	"log"
	"time"

	"pollpulse/internal/config"
	"pollpulse/internal/handler"
	"pollpulse/internal/redis"
	"pollpulse/internal/repository"
	"pollpulse/internal/server"
	"pollpulse/internal/services"
	"pollpulse/pkg/database"
	"pollpulse/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.AppMode)
	logger.SetGlobalLogger(l)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := database.ApplyRawMigrations(db, "migrations"); err != nil {
		log.Fatalf("raw migrations failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	var limiter *redis.RateLimiter
	if cfg.RedisEnabled {
		client := redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			l.Warnf("redis unreachable, rate limiting disabled: %v", err)
		} else {
			limiter = redis.NewRateLimiter(client, redis.DefaultRateLimitConfig())
		}
		cancel()
	}

	userRepo := repository.NewUserRepository(db)
	pollRepo := repository.NewPollRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.JWTExpiryMin)*time.Minute)
	pollService := services.NewPollService(pollRepo, l)
	votingService := services.NewVotingService(pollRepo, voteRepo, l)
	resultsService := services.NewResultsService(pollRepo, voteRepo)
	identity := services.NewIdentityResolver(cfg.VoterHashSalt)

	srv := server.New(cfg, l, authService, server.Handlers{
		Auth: handler.NewAuthHandler(authService, l),
		Poll: handler.NewPollHandler(pollService, l),
		Vote: handler.NewVoteHandler(votingService, resultsService, identity, l),
	}, limiter)

	l.Infof("starting server on port %s", cfg.AppPort)
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
