package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"joywork.app/api/common/id"
	"joywork.app/api/common/logger"
	"joywork.app/api/internal/model"
)

// Producer hands rendered notifications to the worker process.
type Producer interface {
	EnqueueNotification(ctx context.Context, n model.Notification) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) EnqueueNotification(ctx context.Context, n model.Notification) error {
	if n.To == "" {
		return fmt.Errorf("enqueue notification: missing recipient")
	}

	task := NotificationTask{
		NotificationID: id.New(),
		Kind:           string(n.Kind),
		To:             n.To,
		Subject:        n.Subject,
		Body:           n.Body,
		TraceID:        logger.TraceID(ctx),
		Attempt:        1,
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: taskValues(task),
	}).Err(); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued notification",
		"notification_id", task.NotificationID,
		"kind", task.Kind,
		"stream", p.stream)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

func taskValues(t NotificationTask) map[string]any {
	values := map[string]any{
		"task_type":       string(TaskTypeNotification),
		"notification_id": t.NotificationID,
		"kind":            t.Kind,
		"to":              t.To,
		"subject":         t.Subject,
		"body":            t.Body,
		"attempt":         t.Attempt,
	}
	if t.TraceID != "" {
		values["trace_id"] = t.TraceID
	}
	return values
}
