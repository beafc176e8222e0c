package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/voltworks/ev-service-api/docs"
	"github.com/voltworks/ev-service-api/internal/api"
	"github.com/voltworks/ev-service-api/internal/core/service"
	"github.com/voltworks/ev-service-api/internal/infrastructure/config"
	mongoinfra "github.com/voltworks/ev-service-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/voltworks/ev-service-api/internal/infrastructure/db/redis"
	"github.com/voltworks/ev-service-api/internal/infrastructure/queue"
	"github.com/voltworks/ev-service-api/pkg/logger"
)

// @title        EV Service API
// @version      1.0
// @description  Booking and workshop management backend for electric vehicle maintenance.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	mongoClient, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	dispatcher := queue.NewDispatcher(cfg.NotificationWorkers, service.NewNotificationService(log), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, api.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Queue:     dispatcher,
		Logger:    log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info().Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	log.Info().Msg("shutdown complete")
}

// ensureIndexes creates all collection indexes up front so uniqueness
// guarantees hold from the first request.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	indexed := []interface {
		EnsureIndexes(ctx context.Context) error
	}{
		mongoinfra.NewUserRepository(db),
		mongoinfra.NewVehicleRepository(db),
		mongoinfra.NewAppointmentRepository(db),
		mongoinfra.NewPartRepository(db),
		mongoinfra.NewTechnicianRepository(db),
	}
	for _, repo := range indexed {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
