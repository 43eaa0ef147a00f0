package worker

import (
	"context"

	"joywork.app/api/internal/mailer"
	"joywork.app/api/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// Sender delivers rendered notifications. mailer.SMTPMailer and
// mailer.LogMailer both satisfy it.
type Sender interface {
	Send(ctx context.Context, m mailer.Mail) error
}
