package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"joywork.app/api/common/id"
	"joywork.app/api/common/logger"
	"joywork.app/api/internal/model"
	"joywork.app/api/internal/notify"
	"joywork.app/api/internal/store"
)

const (
	MaxMessageLength = 5000

	DefaultMessagePageSize = 20
	MaxMessagePageSize     = 50
)

type SendMessageInput struct {
	Content string
	Kind    model.MessageKind
	FileURL *string
}

// ConversationService manages the message thread attached to each application.
// Only the applicant and members of the hiring company take part.
type ConversationService interface {
	SendMessage(ctx context.Context, userID, applicationID int64, in SendMessageInput) (*model.Message, error)
	ListMessages(ctx context.Context, userID, applicationID int64, page model.Pagination) (*model.Page[model.Message], error)
	ListConversations(ctx context.Context, userID int64, page model.Pagination) (*model.Page[model.Conversation], error)
	MarkMessageRead(ctx context.Context, userID, messageID int64) error
	MarkConversationRead(ctx context.Context, userID, applicationID int64) (int64, error)
	// UnreadCount counts across every visible conversation when applicationID is nil.
	UnreadCount(ctx context.Context, userID int64, applicationID *int64) (int64, error)
}

type conversationService struct {
	appStore     store.ApplicationStore
	messageStore store.MessageStore
	convStore    store.ConversationStore
	userStore    store.UserStore
	companyStore store.CompanyStore
	membership   MembershipResolver
	notifier     Notifier
	dashboardURL string
}

func NewConversationService(
	appStore store.ApplicationStore,
	messageStore store.MessageStore,
	convStore store.ConversationStore,
	userStore store.UserStore,
	companyStore store.CompanyStore,
	membership MembershipResolver,
	notifier Notifier,
	dashboardURL string,
) ConversationService {
	return &conversationService{
		appStore:     appStore,
		messageStore: messageStore,
		convStore:    convStore,
		userStore:    userStore,
		companyStore: companyStore,
		membership:   membership,
		notifier:     notifier,
		dashboardURL: dashboardURL,
	}
}

// participant describes how the caller takes part in a conversation.
type participant struct {
	app         *model.Application
	isApplicant bool
	role        model.Role
}

func (s *conversationService) authorize(ctx context.Context, userID, applicationID int64) (*participant, error) {
	app, err := s.appStore.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("getting application: %w", err)
	}

	if app.IsApplicant(userID) {
		return &participant{app: app, isApplicant: true}, nil
	}

	role, err := s.membership.ResolveRole(ctx, userID, app.CompanyID)
	if err != nil {
		return nil, err
	}
	if !role.CanViewCompanyInbox() {
		return nil, ErrNotParticipant
	}
	return &participant{app: app, role: role}, nil
}

func (s *conversationService) SendMessage(ctx context.Context, userID, applicationID int64, in SendMessageInput) (*model.Message, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:        &userID,
		ApplicationID: &applicationID,
	})

	in, err := normalizeMessageInput(in)
	if err != nil {
		return nil, err
	}

	p, err := s.authorize(ctx, userID, applicationID)
	if err != nil {
		return nil, err
	}
	if !p.isApplicant && !p.role.CanMessageAsCompany() {
		return nil, ErrNotParticipant
	}

	msg := &model.Message{
		ID:            id.New(),
		ApplicationID: applicationID,
		SenderID:      userID,
		Content:       in.Content,
		Kind:          in.Kind,
		FileURL:       in.FileURL,
	}
	if err := s.messageStore.Create(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to create message", "error", err)
		return nil, fmt.Errorf("creating message: %w", err)
	}

	sender, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		slog.WarnContext(ctx, "failed to load message sender", "error", err)
	} else {
		identity := sender.Participant()
		msg.Sender = &identity
	}

	slog.InfoContext(ctx, "message sent",
		"message_id", msg.ID,
		"kind", msg.Kind,
		"from_applicant", p.isApplicant)

	s.notifyMessage(ctx, p, msg, sender)
	return msg, nil
}

func (s *conversationService) notifyMessage(ctx context.Context, p *participant, msg *model.Message, sender *model.User) {
	data := notify.Data{
		JobTitle: p.app.JobTitle,
		Preview:  notify.Preview(msg.Content),
		Link:     fmt.Sprintf("%s/applications/%s/messages", s.dashboardURL, id.Format(p.app.ID)),
	}
	if sender != nil {
		data.SenderName = sender.Name
	}

	if p.isApplicant {
		kind := model.NotificationApplicationMessageToCompany
		dispatchNotification(ctx, kind, func(ctx context.Context) error {
			return s.notifier.NotifyCompanyOwners(ctx, p.app.CompanyID, kind, data)
		})
		return
	}

	kind := model.NotificationApplicationMessageToApplicant
	dispatchNotification(ctx, kind, func(ctx context.Context) error {
		company, err := s.companyStore.GetByID(ctx, p.app.CompanyID)
		if err != nil {
			return fmt.Errorf("getting company: %w", err)
		}
		data.CompanyName = company.Name
		return s.notifier.NotifyUser(ctx, p.app.ApplicantID, kind, data)
	})
}

func normalizeMessageInput(in SendMessageInput) (SendMessageInput, error) {
	if in.Kind == "" {
		in.Kind = model.MessageKindText
	}
	if !in.Kind.IsValid() {
		return in, invalid("kind", "must be TEXT, FILE or IMAGE")
	}

	in.Content = strings.TrimSpace(in.Content)
	if utf8.RuneCountInString(in.Content) > MaxMessageLength {
		return in, invalid("content", fmt.Sprintf("must be at most %d characters", MaxMessageLength))
	}

	if in.FileURL != nil {
		trimmed := strings.TrimSpace(*in.FileURL)
		in.FileURL = &trimmed
		if trimmed == "" {
			in.FileURL = nil
		}
	}

	if in.Kind.RequiresFile() {
		if in.FileURL == nil {
			return in, invalid("file_url", "is required for file and image messages")
		}
	} else if in.Content == "" {
		return in, invalid("content", "must not be empty")
	}

	return in, nil
}

func (s *conversationService) ListMessages(ctx context.Context, userID, applicationID int64, page model.Pagination) (*model.Page[model.Message], error) {
	if _, err := s.authorize(ctx, userID, applicationID); err != nil {
		return nil, err
	}

	page = page.Normalize(DefaultMessagePageSize, MaxMessagePageSize)

	limit, offset := page.Window()
	messages, err := s.messageStore.ListByApplication(ctx, applicationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	total, err := s.messageStore.CountByApplication(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("counting messages: %w", err)
	}

	return &model.Page[model.Message]{
		Items: messages,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}, nil
}

func (s *conversationService) ListConversations(ctx context.Context, userID int64, page model.Pagination) (*model.Page[model.Conversation], error) {
	page = page.Normalize(DefaultMessagePageSize, MaxMessagePageSize)

	limit, offset := page.Window()
	conversations, err := s.convStore.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	total, err := s.convStore.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting conversations: %w", err)
	}

	return &model.Page[model.Conversation]{
		Items: conversations,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}, nil
}

func (s *conversationService) MarkMessageRead(ctx context.Context, userID, messageID int64) error {
	msg, err := s.messageStore.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("getting message: %w", err)
	}

	if _, err := s.authorize(ctx, userID, msg.ApplicationID); err != nil {
		return err
	}

	// Own messages are never marked read by their sender.
	if msg.SenderID == userID || msg.IsRead {
		return nil
	}

	if _, err := s.messageStore.MarkRead(ctx, messageID, userID); err != nil {
		return fmt.Errorf("marking message read: %w", err)
	}
	return nil
}

func (s *conversationService) MarkConversationRead(ctx context.Context, userID, applicationID int64) (int64, error) {
	if _, err := s.authorize(ctx, userID, applicationID); err != nil {
		return 0, err
	}

	n, err := s.messageStore.MarkApplicationRead(ctx, applicationID, userID)
	if err != nil {
		return 0, fmt.Errorf("marking conversation read: %w", err)
	}

	if n > 0 {
		slog.DebugContext(ctx, "conversation marked read",
			"application_id", applicationID,
			"user_id", userID,
			"updated", n)
	}
	return n, nil
}

func (s *conversationService) UnreadCount(ctx context.Context, userID int64, applicationID *int64) (int64, error) {
	if applicationID != nil {
		if _, err := s.authorize(ctx, userID, *applicationID); err != nil {
			return 0, err
		}
		n, err := s.messageStore.CountUnread(ctx, *applicationID, userID)
		if err != nil {
			return 0, fmt.Errorf("counting unread messages: %w", err)
		}
		return n, nil
	}

	ids, err := s.appStore.ListIDsForParticipant(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("listing conversations: %w", err)
	}
	n, err := s.messageStore.CountUnreadForApplications(ctx, ids, userID)
	if err != nil {
		return 0, fmt.Errorf("counting unread messages: %w", err)
	}
	return n, nil
}
