package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"joywork.app/api/common/id"
	"joywork.app/api/common/logger"
	"joywork.app/api/common/otel"
	"joywork.app/api/core/config"
	"joywork.app/api/core/db"
	"joywork.app/api/internal/http/middleware"
	httprouter "joywork.app/api/internal/http/router"
	"joywork.app/api/internal/notify"
	"joywork.app/api/internal/queue"
	"joywork.app/api/internal/service"
	"joywork.app/api/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}
	if err := config.ApplyFlags(&cfg, "joywork-server", os.Args[1:]); err != nil {
		slog.ErrorContext(ctx, "invalid flags", "error", err)
		os.Exit(2)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "joywork api starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(cfg.NodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	catalog, err := notify.Default()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load notification templates", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Notification.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Notification.Stream)

	producer := queue.NewRedisProducer(redisClient, cfg.Notification.Stream, slog.Default())

	services := service.NewServices(
		store.NewStores(database.Queries()),
		service.NewTxRunner(database),
		catalog,
		producer,
		cfg,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, database)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler(cfg, router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if err := producer.Close(); err != nil {
		slog.ErrorContext(shutdownCtx, "redis close error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, database *db.DB) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		TraceHeaderName: cfg.TraceHeaderName,
		DB:              database,
	})

	return router
}

// corsHandler lets the dashboard call the API with its session cookie.
func corsHandler(cfg config.Config, h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", middleware.SessionIDHeader},
		ExposedHeaders:   []string{cfg.TraceHeaderName},
		MaxAge:           300,
		AllowCredentials: true,
	}).Handler(h)
}

const banner = `
     _                                _
    (_) ___  _   ___      _____  _ __| | __
    | |/ _ \| | | \ \ /\ / / _ \| '__| |/ /
    | | (_) | |_| |\ V  V / (_) | |  |   <
   _/ |\___/ \__, | \_/\_/ \___/|_|  |_|\_\
  |__/       |___/                     api
`
