package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"joywork.app/api/common/logger"
	"joywork.app/api/internal/queue"
)

// PendingStream is the slice of the Redis client the reclaimer needs.
// *redis.Client satisfies it.
type PendingStream interface {
	XPendingExt(ctx context.Context, a *redis.XPendingExtArgs) *redis.XPendingExtCmd
	XClaim(ctx context.Context, a *redis.XClaimArgs) *redis.XMessageSliceCmd
}

type ReclaimerConfig struct {
	Stream    string
	Group     string
	Consumer  string
	MinIdle   time.Duration
	Interval  time.Duration
	BatchSize int64
	// MaxDeliveries moves a notification to the DLQ once Redis has handed it
	// out this many times without an ack. Zero disables the cap.
	MaxDeliveries int64
}

// Reclaimer picks up notifications a worker read but never acked, usually
// because it crashed mid-send, and runs them through the normal handler.
type Reclaimer struct {
	streams   PendingStream
	cfg       ReclaimerConfig
	consumer  Consumer
	processor queue.MessageProcessor

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewReclaimer(streams PendingStream, cfg ReclaimerConfig, consumer Consumer, processor queue.MessageProcessor) *Reclaimer {
	return &Reclaimer{
		streams:   streams,
		cfg:       cfg,
		consumer:  consumer,
		processor: processor,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run reclaims on every tick until ctx is done or Stop is called.
func (r *Reclaimer) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "joywork.worker.reclaimer",
	})
	defer close(r.stoppedCh)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "reclaimer started",
		"interval", r.cfg.Interval,
		"min_idle", r.cfg.MinIdle,
		"stream", r.cfg.Stream)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			slog.InfoContext(ctx, "reclaimer stopping")
			return
		case <-ticker.C:
			if _, err := r.ReclaimOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "reclaim cycle failed", "error", err)
			}
		}
	}
}

func (r *Reclaimer) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}

// ReclaimOnce claims one batch of stale entries and returns how many were
// claimed. Failures on single entries are logged and skipped.
func (r *Reclaimer) ReclaimOnce(ctx context.Context) (int, error) {
	pending, err := r.streams.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: r.cfg.Stream,
		Group:  r.cfg.Group,
		Idle:   r.cfg.MinIdle,
		Start:  "-",
		End:    "+",
		Count:  r.cfg.BatchSize,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("xpending: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	slog.InfoContext(ctx, "found stale notifications", "count", len(pending))

	claimed := 0
	for _, p := range pending {
		ok, err := r.reclaim(ctx, p)
		if err != nil {
			slog.ErrorContext(ctx, "failed to reclaim notification",
				"error", err,
				"message_id", p.ID,
				"original_consumer", p.Consumer,
				"deliveries", p.RetryCount)
			continue
		}
		if ok {
			claimed++
		}
	}
	return claimed, nil
}

func (r *Reclaimer) reclaim(ctx context.Context, pending redis.XPendingExt) (bool, error) {
	msgID := pending.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{MessageID: &msgID})

	entries, err := r.streams.XClaim(ctx, &redis.XClaimArgs{
		Stream:   r.cfg.Stream,
		Group:    r.cfg.Group,
		Consumer: r.cfg.Consumer,
		MinIdle:  r.cfg.MinIdle,
		Messages: []string{pending.ID},
	}).Result()
	if err != nil {
		return false, fmt.Errorf("xclaim: %w", err)
	}
	if len(entries) == 0 {
		slog.DebugContext(ctx, "notification already claimed elsewhere")
		return false, nil
	}
	entry := entries[0]

	msg, err := queue.ParseMessage(entry)
	if err != nil {
		slog.ErrorContext(ctx, "dropping unparseable notification", "error", err)
		_ = r.consumer.Ack(ctx, queue.Message{ID: entry.ID, Raw: entry})
		return true, nil
	}

	if r.cfg.MaxDeliveries > 0 && pending.RetryCount >= r.cfg.MaxDeliveries {
		reason := fmt.Sprintf("delivered %d times without ack", pending.RetryCount)
		slog.ErrorContext(ctx, "notification keeps stalling, sending to DLQ",
			"notification_id", msg.Task.NotificationID,
			"deliveries", pending.RetryCount)
		if err := r.consumer.SendDLQ(ctx, msg, reason); err != nil {
			return true, fmt.Errorf("sending to dlq: %w", err)
		}
		return true, nil
	}

	slog.InfoContext(ctx, "retrying stale notification",
		"notification_id", msg.Task.NotificationID,
		"original_consumer", pending.Consumer,
		"idle", pending.Idle)

	// The processor owns retry and DLQ routing, so its error is already handled.
	_ = r.processor(ctx, msg)
	return true, nil
}
