package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"joywork.app/api/common/id"
	"joywork.app/api/common/logger"
	"joywork.app/api/core/config"
	"joywork.app/api/internal/model"
	"joywork.app/api/internal/notify"
	"joywork.app/api/internal/store"
)

const (
	MaxActiveTicketsPerCompany = 3
	MaxTicketsPerWindow        = 5
	TicketWindow               = 24 * time.Hour

	MaxTicketTitleLength   = 200
	MaxTicketContentLength = 5000

	DefaultTicketPageSize        = 10
	MaxTicketPageSize            = 100
	DefaultTicketMessagePageSize = 50
	MaxTicketMessagePageSize     = 100
)

type CreateTicketInput struct {
	CompanyID int64
	Title     string
	Content   string
}

type ListTicketsInput struct {
	// CompanyID selects the company inbox; nil lists the caller's own tickets.
	CompanyID  *int64
	Status     *model.TicketStatus
	Pagination model.Pagination
}

// TicketService runs support threads between applicants and companies.
//
// Status follows the last writer: an applicant message reopens the ticket,
// a company message marks it RESPONDED. Applicants may only close a ticket
// explicitly; company members may set any status.
type TicketService interface {
	Create(ctx context.Context, userID int64, in CreateTicketInput) (*model.Ticket, *model.TicketMessage, error)
	List(ctx context.Context, userID int64, in ListTicketsInput) (*model.TicketPage, error)
	GetMessages(ctx context.Context, userID, ticketID int64, page model.Pagination) (*model.Page[model.TicketMessage], error)
	SendMessage(ctx context.Context, userID, ticketID int64, content string) (*model.TicketMessage, error)
	UpdateStatus(ctx context.Context, userID, ticketID int64, status model.TicketStatus) (*model.Ticket, error)
}

type ticketService struct {
	txRunner     TxRunner
	ticketStore  store.TicketStore
	companyStore store.CompanyStore
	userStore    store.UserStore
	membership   MembershipResolver
	notifier     Notifier
	cfg          config.TicketConfig
	dashboardURL string
	now          func() time.Time
}

func NewTicketService(
	txRunner TxRunner,
	ticketStore store.TicketStore,
	companyStore store.CompanyStore,
	userStore store.UserStore,
	membership MembershipResolver,
	notifier Notifier,
	cfg config.TicketConfig,
	dashboardURL string,
	now func() time.Time,
) TicketService {
	if now == nil {
		now = time.Now
	}
	return &ticketService{
		txRunner:     txRunner,
		ticketStore:  ticketStore,
		companyStore: companyStore,
		userStore:    userStore,
		membership:   membership,
		notifier:     notifier,
		cfg:          cfg,
		dashboardURL: dashboardURL,
		now:          now,
	}
}

func (s *ticketService) Create(ctx context.Context, userID int64, in CreateTicketInput) (*model.Ticket, *model.TicketMessage, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:    &userID,
		CompanyID: &in.CompanyID,
	})

	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if err := validateLength("title", title, MaxTicketTitleLength); err != nil {
		return nil, nil, err
	}
	if err := validateLength("content", content, MaxTicketContentLength); err != nil {
		return nil, nil, err
	}

	company, err := s.companyStore.GetByID(ctx, in.CompanyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrCompanyNotFound
		}
		return nil, nil, fmt.Errorf("getting company: %w", err)
	}

	if !s.isPlatformSupport(company.ID) {
		role, err := s.membership.ResolveRole(ctx, userID, company.ID)
		if err != nil {
			return nil, nil, err
		}
		if role.IsMember() {
			return nil, nil, ErrSelfTicket
		}
	}

	// Limits are checked before the insert without a lock, so concurrent
	// requests can each pass and overshoot by one.
	active, err := s.ticketStore.CountActiveForCompany(ctx, userID, company.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("counting active tickets: %w", err)
	}
	if active >= MaxActiveTicketsPerCompany {
		slog.InfoContext(ctx, "ticket rejected, open ticket limit", "active", active)
		return nil, nil, ErrOpenTicketLimit
	}

	recent, err := s.ticketStore.CountCreatedSince(ctx, userID, s.now().Add(-TicketWindow))
	if err != nil {
		return nil, nil, fmt.Errorf("counting recent tickets: %w", err)
	}
	if recent >= MaxTicketsPerWindow {
		slog.InfoContext(ctx, "ticket rejected, daily ticket limit", "recent", recent)
		return nil, nil, ErrDailyTicketLimit
	}

	ticket := &model.Ticket{
		ID:          id.New(),
		CompanyID:   company.ID,
		ApplicantID: userID,
		Title:       title,
		Status:      model.TicketStatusOpen,
	}
	msg := &model.TicketMessage{
		ID:       id.New(),
		TicketID: ticket.ID,
		SenderID: userID,
		Content:  content,
	}

	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Tickets().Create(ctx, ticket); err != nil {
			return fmt.Errorf("creating ticket: %w", err)
		}
		if err := sp.Tickets().CreateMessage(ctx, msg); err != nil {
			return fmt.Errorf("creating first message: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create ticket", "error", err)
		return nil, nil, err
	}

	s.attachSender(ctx, msg)

	slog.InfoContext(ctx, "ticket created", "ticket_id", ticket.ID)

	kind := model.NotificationTicketCreated
	data := s.ticketData(ticket, msg)
	data.CompanyName = company.Name
	dispatchNotification(ctx, kind, func(ctx context.Context) error {
		return s.notifier.NotifyCompanyOwners(ctx, company.ID, kind, data)
	})

	return ticket, msg, nil
}

func (s *ticketService) isPlatformSupport(companyID int64) bool {
	return slices.Contains(s.cfg.PlatformSupportCompanyIDs, companyID)
}

func (s *ticketService) List(ctx context.Context, userID int64, in ListTicketsInput) (*model.TicketPage, error) {
	if in.Status != nil && !in.Status.IsValid() {
		return nil, invalid("status", "must be OPEN, RESPONDED or CLOSED")
	}

	filter := store.TicketFilter{Status: in.Status}
	scope := model.TicketScopeMine

	if in.CompanyID != nil {
		role, err := s.membership.ResolveRole(ctx, userID, *in.CompanyID)
		if err != nil {
			return nil, err
		}
		if !role.CanViewCompanyInbox() {
			return nil, ErrNotCompanyMember
		}
		filter.CompanyID = in.CompanyID
		scope = model.TicketScopeCompany
	} else {
		filter.ApplicantID = &userID
	}

	page := in.Pagination.Normalize(DefaultTicketPageSize, MaxTicketPageSize)

	limit, offset := page.Window()
	tickets, err := s.ticketStore.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}
	total, err := s.ticketStore.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("counting tickets: %w", err)
	}

	for i := range tickets {
		tickets[i].HasUnread = tickets[i].HasUnreadFor(userID)
	}

	return &model.TicketPage{
		Scope: scope,
		Items: tickets,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}, nil
}

// ticketParty describes the caller's side of a ticket.
type ticketParty struct {
	ticket      *model.Ticket
	isApplicant bool
	role        model.Role
}

func (s *ticketService) authorize(ctx context.Context, userID, ticketID int64) (*ticketParty, error) {
	ticket, err := s.ticketStore.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("getting ticket: %w", err)
	}

	if ticket.IsApplicant(userID) {
		return &ticketParty{ticket: ticket, isApplicant: true}, nil
	}

	role, err := s.membership.ResolveRole(ctx, userID, ticket.CompanyID)
	if err != nil {
		return nil, err
	}
	if !role.CanViewCompanyInbox() {
		return nil, ErrNotParticipant
	}
	return &ticketParty{ticket: ticket, role: role}, nil
}

func (s *ticketService) GetMessages(ctx context.Context, userID, ticketID int64, page model.Pagination) (*model.Page[model.TicketMessage], error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:   &userID,
		TicketID: &ticketID,
	})

	p, err := s.authorize(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}

	page = page.Normalize(DefaultTicketMessagePageSize, MaxTicketMessagePageSize)

	limit, offset := page.Window()
	messages, err := s.ticketStore.ListMessages(ctx, ticketID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing ticket messages: %w", err)
	}
	total, err := s.ticketStore.CountMessages(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("counting ticket messages: %w", err)
	}

	if err := s.ticketStore.MarkViewed(ctx, ticketID, p.isApplicant); err != nil {
		slog.WarnContext(ctx, "failed to update ticket read marker", "error", err)
	}

	return &model.Page[model.TicketMessage]{
		Items: messages,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}, nil
}

func (s *ticketService) SendMessage(ctx context.Context, userID, ticketID int64, content string) (*model.TicketMessage, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:   &userID,
		TicketID: &ticketID,
	})

	content = strings.TrimSpace(content)
	if err := validateLength("content", content, MaxTicketContentLength); err != nil {
		return nil, err
	}

	p, err := s.authorize(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	if !p.isApplicant && !p.role.CanMessageAsCompany() {
		return nil, ErrNotParticipant
	}

	msg := &model.TicketMessage{
		ID:       id.New(),
		TicketID: ticketID,
		SenderID: userID,
		Content:  content,
	}

	var updated *model.Ticket
	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Tickets().CreateMessage(ctx, msg); err != nil {
			return fmt.Errorf("creating ticket message: %w", err)
		}
		t, err := sp.Tickets().RecordMessage(ctx, ticketID, p.isApplicant)
		if err != nil {
			return fmt.Errorf("updating ticket status: %w", err)
		}
		updated = t
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to send ticket message", "error", err)
		return nil, err
	}

	s.attachSender(ctx, msg)

	slog.InfoContext(ctx, "ticket message sent",
		"message_id", msg.ID,
		"status", updated.Status,
		"from_applicant", p.isApplicant)

	data := s.ticketData(updated, msg)
	if p.isApplicant {
		kind := model.NotificationTicketMessageFromApplicant
		dispatchNotification(ctx, kind, func(ctx context.Context) error {
			return s.notifier.NotifyCompanyOwners(ctx, updated.CompanyID, kind, data)
		})
	} else {
		kind := model.NotificationTicketReplyFromCompany
		dispatchNotification(ctx, kind, func(ctx context.Context) error {
			company, err := s.companyStore.GetByID(ctx, updated.CompanyID)
			if err != nil {
				return fmt.Errorf("getting company: %w", err)
			}
			data.CompanyName = company.Name
			return s.notifier.NotifyUser(ctx, updated.ApplicantID, kind, data)
		})
	}

	return msg, nil
}

func (s *ticketService) UpdateStatus(ctx context.Context, userID, ticketID int64, status model.TicketStatus) (*model.Ticket, error) {
	if !status.IsValid() {
		return nil, invalid("status", "must be OPEN, RESPONDED or CLOSED")
	}

	p, err := s.authorize(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}

	if p.isApplicant {
		if status != model.TicketStatusClosed {
			return nil, ErrApplicantStatusChange
		}
	} else if !p.role.CanManageTicketStatus() {
		return nil, ErrNotParticipant
	}

	ticket, err := s.ticketStore.UpdateStatus(ctx, ticketID, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("updating ticket status: %w", err)
	}

	slog.InfoContext(ctx, "ticket status updated",
		"ticket_id", ticketID,
		"user_id", userID,
		"from", p.ticket.Status,
		"to", ticket.Status)

	return ticket, nil
}

func (s *ticketService) attachSender(ctx context.Context, msg *model.TicketMessage) {
	sender, err := s.userStore.GetByID(ctx, msg.SenderID)
	if err != nil {
		slog.WarnContext(ctx, "failed to load message sender", "error", err)
		return
	}
	identity := sender.Participant()
	msg.Sender = &identity
}

func (s *ticketService) ticketData(ticket *model.Ticket, msg *model.TicketMessage) notify.Data {
	data := notify.Data{
		TicketTitle: ticket.Title,
		Preview:     notify.Preview(msg.Content),
		Link:        fmt.Sprintf("%s/tickets/%s", s.dashboardURL, id.Format(ticket.ID)),
	}
	if msg.Sender != nil {
		data.SenderName = msg.Sender.Name
	}
	return data
}

func validateLength(field, value string, max int) error {
	if value == "" {
		return invalid(field, "must not be empty")
	}
	if utf8.RuneCountInString(value) > max {
		return invalid(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return nil
}
