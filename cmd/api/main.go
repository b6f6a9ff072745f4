package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/classdesk/classroom-api/internal/api"
	"github.com/classdesk/classroom-api/internal/core/service"
	"github.com/classdesk/classroom-api/internal/core/token"
	"github.com/classdesk/classroom-api/internal/infrastructure/config"
	mongodb "github.com/classdesk/classroom-api/internal/infrastructure/db/mongo"
	redisdb "github.com/classdesk/classroom-api/internal/infrastructure/db/redis"
	"github.com/classdesk/classroom-api/internal/infrastructure/queue"
	"github.com/classdesk/classroom-api/pkg/logger"
)

const defaultMaxLoginFailures = 10

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(logger.Options{})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	assignmentRepo := mongodb.NewAssignmentRepository(db)
	submissionRepo := mongodb.NewSubmissionRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	// --- Audit recorder (background workers) ---
	recorder := queue.NewRecorder(0, auditRepo, log)
	recorder.Start(ctx)

	// --- Services ---
	codec := token.NewCodec([]byte(cfg.JWTSecret), cfg.TokenTTL)
	throttle := redisdb.NewLoginThrottle(rdb, defaultMaxLoginFailures)
	authService := service.NewAuthService(userRepo, codec, throttle, recorder, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, recorder, log)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, recorder, log)

	e := api.NewRouter(api.Deps{
		Logger:      log,
		Codec:       codec,
		Users:       userRepo,
		Auth:        authService,
		Assignments: assignmentService,
		Submissions: submissionService,
		Mongo:       db,
		Redis:       rdb,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
