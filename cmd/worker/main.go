package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"joywork.app/api/common/id"
	"joywork.app/api/common/logger"
	"joywork.app/api/common/otel"
	"joywork.app/api/core/config"
	"joywork.app/api/internal/mailer"
	"joywork.app/api/internal/queue"
	"joywork.app/api/internal/worker"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}
	if err := config.ApplyFlags(&cfg, "joywork-worker", os.Args[1:]); err != nil {
		slog.ErrorContext(ctx, "invalid flags", "error", err)
		os.Exit(2)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "joywork notification worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Notification.Group,
		"consumer_name", cfg.Notification.Consumer)

	// The server and worker must use different node IDs.
	if err := id.Init(cfg.NodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	sender, err := newSender(cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to configure mailer", "error", err)
		os.Exit(1)
	}

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
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Notification.Stream)

	consumer, err := queue.NewRedisConsumer(ctx, redisClient, queue.ConsumerConfig{
		Stream:       cfg.Notification.Stream,
		Group:        cfg.Notification.Group,
		Consumer:     cfg.Notification.Consumer,
		DLQStream:    cfg.Notification.DLQStream,
		BatchSize:    10,
		Block:        5 * time.Second,
		MaxAttempts:  cfg.Notification.MaxAttempts,
		RequeueDelay: 2 * time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	w := worker.New(consumer, sender, worker.Config{
		MaxAttempts: consumer.MaxAttempts(),
	})

	// Entries a crashed worker read but never acked go back through the same failure handling.
	reclaimer := worker.NewReclaimer(redisClient, worker.ReclaimerConfig{
		Stream:        cfg.Notification.Stream,
		Group:         cfg.Notification.Group,
		Consumer:      cfg.Notification.Consumer + "-reclaimer",
		MinIdle:       5 * time.Minute,
		Interval:      time.Minute,
		BatchSize:     10,
		MaxDeliveries: int64(cfg.Notification.MaxAttempts),
	}, consumer, w.Handle)

	errCh := make(chan error, 2)
	go func() {
		errCh <- w.Run(ctx)
	}()
	go func() {
		reclaimer.Run(ctx)
		errCh <- nil
	}()

	slog.InfoContext(ctx, "worker initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Stop reclaimer first (quick)
	reclaimer.Stop()

	// Stop worker (may be sending)
	w.Stop()

	select {
	case <-shutdownCtx.Done():
		slog.WarnContext(ctx, "shutdown timeout exceeded")
	case err := <-errCh:
		if err != nil {
			slog.ErrorContext(ctx, "worker error during shutdown", "error", err)
		}
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

func newSender(cfg config.Config) (worker.Sender, error) {
	if !cfg.SMTP.Enabled() {
		slog.Warn("smtp not configured, notifications will only be logged")
		return mailer.LogMailer{}, nil
	}
	m, err := mailer.NewSMTPMailer(cfg.SMTP)
	if err != nil {
		return nil, err
	}
	return m, nil
}

const banner = `
     _                                _
    (_) ___  _   ___      _____  _ __| | __
    | |/ _ \| | | \ \ /\ / / _ \| '__| |/ /
    | | (_) | |_| |\ V  V / (_) | |  |   <
   _/ |\___/ \__, | \_/\_/ \___/|_|  |_|\_\
  |__/       |___/                  worker
`
