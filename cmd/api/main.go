// Command api runs the task rewards HTTP server.
//
//	@title			Task Rewards API
//	@version		1.0
//	@description	Task and rewards service: members complete tasks, earn points and tokens, and redeem tokens in the shop.
//	@BasePath		/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/taskforge/rewards-api/docs"
	"github.com/taskforge/rewards-api/internal/api"
	"github.com/taskforge/rewards-api/internal/infrastructure/config"
	mongodb "github.com/taskforge/rewards-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskforge/rewards-api/internal/infrastructure/db/redis"
	"github.com/taskforge/rewards-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallbackLog := logger.Init(logger.Options{})
		fallbackLog.Fatal().Err(err).Msg("configuration error")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, disconnect, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := mongodb.NewSubmissionRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("submission indexes failed")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
