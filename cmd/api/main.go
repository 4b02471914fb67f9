package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/expenser/expense-api/internal/api"
	"github.com/expenser/expense-api/internal/api/handler"
	"github.com/expenser/expense-api/internal/core/service"
	"github.com/expenser/expense-api/internal/infrastructure/db/mongo"
	"github.com/expenser/expense-api/internal/infrastructure/db/redis"
	"github.com/expenser/expense-api/internal/pkg/config"
	"github.com/expenser/expense-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       Expenser API
// @version                     1.0
// @description                 Personal expense tracking: accounts, login sessions and per-user expenses.
// @BasePath                    /
// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        loginToken
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "expense-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.ConnectionString(),
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := mongo.NewUserRepository(db)
	expenseRepo := mongo.NewExpenseRepository(db)
	if err := mongo.EnsureIndexes(ctx, userRepo, expenseRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// --- Services ---
	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := service.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	idem := redis.NewIdempotencyStore(rdb, cfg.Idempotency.TTL)

	e := api.NewRouter(api.Deps{
		Logger:     log,
		Production: cfg.IsProduction(),
		Auth:       service.NewAuthService(userRepo, hasher, tokens, log),
		Users:      service.NewUserService(userRepo, hasher, log),
		Expenses:   service.NewExpenseService(expenseRepo, idem, log),
		Tokens:     tokens,
		UserLookup: userRepo,
		HealthChecks: map[string]handler.Check{
			"mongodb": mongo.Probe(client),
			"redis":   redis.Probe(rdb),
		},
	})

	runHTTPServer(e, cfg.Port)
	<-ctx.Done()
	shutdown(e)
}

// runHTTPServer starts the server in its own goroutine.
func runHTTPServer(e *echo.Echo, port string) {
	log := logger.Get()
	go func() {
		log.Info().Str("port", port).Msg("HTTP server listening")
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("error starting server")
		}
	}()
}

// shutdown lets in-flight requests complete before returning.
func shutdown(e *echo.Echo) {
	log := logger.Get()
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
}
