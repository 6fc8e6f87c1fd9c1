package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/verisalt/srp-auth-server/internal/config"
	"github.com/verisalt/srp-auth-server/internal/handlers"
	"github.com/verisalt/srp-auth-server/internal/logger"
	"github.com/verisalt/srp-auth-server/internal/repository"
	"github.com/verisalt/srp-auth-server/internal/repository/memory"
	redis_repo "github.com/verisalt/srp-auth-server/internal/repository/redis"
	"github.com/verisalt/srp-auth-server/internal/repository/sqlite"
	"github.com/verisalt/srp-auth-server/internal/router"
	"github.com/verisalt/srp-auth-server/internal/server"
	"github.com/verisalt/srp-auth-server/internal/service"
	"github.com/verisalt/srp-auth-server/internal/srpgroup"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.AppEnv)

	group, err := srpgroup.Get(cfg.SRP.Group)
	if err != nil {
		log.Fatalf("Refusing to start on invalid group parameters: %v", err)
	}

	db, err := sql.Open("sqlite3", cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open credentials database: %v", err)
	}
	defer db.Close()

	credRepo, err := sqlite.NewSQLiteCredentialRepository(db)
	if err != nil {
		log.Fatalf("Failed to initialize credential store: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisSettings.Address,
		Password: cfg.RedisSettings.Password,
		DB:       cfg.RedisSettings.DB,
	})
	sessionRepo := redis_repo.NewRedisSessionRepository(redisClient)

	var challengeRepo repository.ChallengeRepository
	var pendingRepo repository.PendingLoginRepository
	if cfg.ChallengeStore == "redis" {
		challengeRepo = redis_repo.NewRedisChallengeRepository(redisClient)
		pendingRepo = redis_repo.NewRedisPendingLoginRepository(redisClient)
	} else {
		memChallenges := memory.NewMemoryChallengeRepository(cfg.SRP.SweepInterval)
		defer memChallenges.Close()
		challengeRepo = memChallenges

		memPending := memory.NewMemoryPendingLoginRepository(cfg.SRP.SweepInterval)
		defer memPending.Close()
		pendingRepo = memPending
	}

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.Session.TokenDuration)
	authService := service.NewAuthService(
		credRepo,
		challengeRepo,
		pendingRepo,
		sessionRepo,
		tokenService,
		group,
		cfg.SRP.ChallengeTTL,
	)
	sessionService := service.NewSessionService(sessionRepo)

	app := server.New(cfg)
	router.SetupAuthRoutes(app, handlers.NewAuthHandler(authService))
	router.SetupSessionRoutes(app, handlers.NewSessionHandler(sessionService), cfg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		log.Printf("Server starting on port %s...", cfg.Port)
		if err := app.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
