package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"joywork.app/api/internal/model"
	"joywork.app/api/internal/notify"
	"joywork.app/api/internal/store"
)

// notificationTimeout bounds the outbox handoff so a slow Redis cannot hold a request.
const notificationTimeout = 3 * time.Second

// Notifier renders notification emails and hands them to the outbox.
type Notifier interface {
	// NotifyCompanyOwners emails every member whose role receives ticket alerts.
	NotifyCompanyOwners(ctx context.Context, companyID int64, kind model.NotificationKind, data notify.Data) error
	NotifyUser(ctx context.Context, userID int64, kind model.NotificationKind, data notify.Data) error
}

// Outbox accepts rendered notifications for asynchronous delivery.
// queue.Producer satisfies it.
type Outbox interface {
	EnqueueNotification(ctx context.Context, n model.Notification) error
}

type notifier struct {
	companyStore store.CompanyStore
	userStore    store.UserStore
	catalog      *notify.Catalog
	outbox       Outbox
}

func NewNotifier(companyStore store.CompanyStore, userStore store.UserStore, catalog *notify.Catalog, outbox Outbox) Notifier {
	return &notifier{
		companyStore: companyStore,
		userStore:    userStore,
		catalog:      catalog,
		outbox:       outbox,
	}
}

var companyRoles = []model.Role{model.RoleOwner, model.RoleAdmin, model.RoleMember}

func (n *notifier) NotifyCompanyOwners(ctx context.Context, companyID int64, kind model.NotificationKind, data notify.Data) error {
	var errs []error
	for _, role := range companyRoles {
		if !role.ReceivesTicketAlerts() {
			continue
		}
		members, err := n.companyStore.ListMembersByRole(ctx, companyID, role)
		if err != nil {
			return fmt.Errorf("listing %s members: %w", role, err)
		}
		for i := range members {
			if err := n.send(ctx, &members[i], kind, data); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (n *notifier) NotifyUser(ctx context.Context, userID int64, kind model.NotificationKind, data notify.Data) error {
	user, err := n.userStore.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("getting recipient: %w", err)
	}
	return n.send(ctx, user, kind, data)
}

func (n *notifier) send(ctx context.Context, recipient *model.User, kind model.NotificationKind, data notify.Data) error {
	data.RecipientName = recipient.Name
	msg, err := n.catalog.Render(kind, recipient.Email, data)
	if err != nil {
		return err
	}
	if err := n.outbox.EnqueueNotification(ctx, msg); err != nil {
		return fmt.Errorf("enqueueing %s for user %d: %w", kind, recipient.ID, err)
	}
	return nil
}

// dispatchNotification runs fn after the triggering change has committed.
// Errors and panics are logged and dropped; the caller's result never
// depends on notification delivery.
func dispatchNotification(ctx context.Context, kind model.NotificationKind, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "notification dispatch panicked",
				"kind", kind,
				"panic", r)
		}
	}()

	if err := fn(ctx); err != nil {
		slog.WarnContext(ctx, "notification dispatch failed",
			"kind", kind,
			"error", err)
	}
}
