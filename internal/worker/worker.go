package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"joywork.app/api/common/logger"
	"joywork.app/api/internal/mailer"
	"joywork.app/api/internal/queue"
)

type Config struct {
	MaxAttempts int
	// ErrorBackoff is how long Run pauses after a failed read.
	ErrorBackoff time.Duration
}

// Worker drains the notification stream and sends each entry as an email.
type Worker struct {
	consumer Consumer
	sender   Sender
	cfg      Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, sender Sender, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = time.Second
	}
	return &Worker{
		consumer:  consumer,
		sender:    sender,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "joywork.worker",
	})
	slog.InfoContext(ctx, "worker started", "max_attempts", w.cfg.MaxAttempts)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				select {
				case <-ctx.Done():
				case <-time.After(w.cfg.ErrorBackoff):
				}
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		w.Handle(ctx, msg)
	}

	return nil
}

// Handle sends one message and routes failures to a retry or the DLQ.
// The reclaimer uses it for stale pending entries.
func (w *Worker) Handle(ctx context.Context, msg queue.Message) error {
	if err := w.processMessageSafe(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "message processing failed",
			"error", err,
			"message_id", msg.ID,
			"notification_id", msg.Task.NotificationID)
		w.handleFailedMessage(ctx, msg, err)
		return err
	}
	return nil
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing",
				"panic", r,
				"message_id", msg.ID)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// ProcessMessage sends the email and acks the stream entry.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	msgID := msg.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID: &msgID,
	})

	sc := logger.StartSpanFromTraceID(ctx, msg.Task.TraceID, "worker.send_notification")
	defer sc.End()
	ctx = sc.Context()

	slog.InfoContext(ctx, "sending notification",
		"notification_id", msg.Task.NotificationID,
		"kind", msg.Task.Kind,
		"attempt", msg.Task.Attempt)

	start := time.Now()
	if err := w.sender.Send(ctx, mailer.Mail{
		To:      msg.Task.To,
		Subject: msg.Task.Subject,
		Body:    msg.Task.Body,
	}); err != nil {
		sc.RecordError(err)
		return fmt.Errorf("sending notification: %w", err)
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// A lost ack means the reclaimer may send the mail again.
		slog.WarnContext(ctx, "failed to ACK message",
			"error", err,
			"message_id", msg.ID)
	}

	slog.InfoContext(ctx, "notification sent",
		"notification_id", msg.Task.NotificationID,
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Task.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ",
			"message_id", msg.ID,
			"notification_id", msg.Task.NotificationID,
			"attempts", msg.Task.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message",
		"message_id", msg.ID,
		"notification_id", msg.Task.NotificationID,
		"attempt", msg.Task.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
