package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	v1 "go-huddle/cmd/api/router/v1"
	"go-huddle/internal/config"
	cacheAdapter "go-huddle/internal/infrastructure/cache/adapter"
	"go-huddle/internal/infrastructure/database"
	"go-huddle/internal/infrastructure/logging"
	queueAdapter "go-huddle/internal/infrastructure/queue/adapter"
	"go-huddle/internal/infrastructure/realtime"
	"go-huddle/internal/pkg/chat/application/task"
	repoAdapter "go-huddle/internal/pkg/chat/persistence/repository/adapter"
	"go-huddle/internal/pkg/chat/presentation/controller"
	httpHandler "go-huddle/internal/pkg/chat/presentation/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file; a missing file is fine in deployed environments.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.L().Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Init("go-huddle", cfg.LogLevel)
	log := logging.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	pool, err := database.Connect(connectCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	cache, err := cacheAdapter.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer cache.Close()

	queueClient, err := queueAdapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create queue client")
	}
	defer queueClient.Close()

	queueServer, err := queueAdapter.NewAsynqServer(cfg.RedisURL, cfg.QueueConcurrency)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create queue server")
	}
	task.RegisterPresenceFlagTask(queueServer, repoAdapter.NewPgUserRepository(pool))
	go func() {
		if err := queueServer.Run(ctx); err != nil {
			log.Error().Err(err).Msg("queue server stopped")
		}
	}()

	// Realtime state is owned here and injected everywhere: constructed at
	// process start, torn down at shutdown.
	rtRouter := realtime.NewRouter()
	presence := realtime.NewPresence()
	defer rtRouter.Close()

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	v1.RegisterRoutes(r, httpHandler.Deps{
		Pool:     pool,
		Cache:    cache,
		Queue:    queueClient,
		Router:   rtRouter,
		Presence: presence,
		Socket: controller.SocketConfig{
			ReadTimeout: cfg.ReadTimeout,
			ReadLimit:   cfg.ReadLimit,
			SendBuffer:  cfg.SendBufferSize,
			NameTTL:     cfg.UsernameCacheTTL,
		},
	})

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
