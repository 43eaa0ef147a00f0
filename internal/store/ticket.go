package store

import (
	"context"
	"time"

	"joywork.app/api/core/db/sqlc"
	"joywork.app/api/internal/model"
)

type ticketStore struct {
	queries *sqlc.Queries
}

func newTicketStore(queries *sqlc.Queries) TicketStore {
	return &ticketStore{queries: queries}
}

func (s *ticketStore) Create(ctx context.Context, ticket *model.Ticket) error {
	row, err := s.queries.CreateTicket(ctx, sqlc.CreateTicketParams{
		ID:          ticket.ID,
		CompanyID:   ticket.CompanyID,
		ApplicantID: ticket.ApplicantID,
		Title:       ticket.Title,
		Status:      string(ticket.Status),
	})
	if err != nil {
		return err
	}
	*ticket = *toTicketModel(row)
	return nil
}

func (s *ticketStore) GetByID(ctx context.Context, id int64) (*model.Ticket, error) {
	row, err := s.queries.GetTicket(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toTicketModel(row), nil
}

func (s *ticketStore) CountActiveForCompany(ctx context.Context, applicantID, companyID int64) (int64, error) {
	return s.queries.CountActiveTicketsForCompany(ctx, sqlc.CountActiveTicketsForCompanyParams{
		ApplicantID: applicantID,
		CompanyID:   companyID,
		Statuses:    activeStatuses(),
	})
}

func activeStatuses() []string {
	var out []string
	for _, status := range model.TicketStatuses() {
		if status.IsActive() {
			out = append(out, string(status))
		}
	}
	return out
}

func (s *ticketStore) CountCreatedSince(ctx context.Context, applicantID int64, since time.Time) (int64, error) {
	return s.queries.CountTicketsCreatedSince(ctx, sqlc.CountTicketsCreatedSinceParams{
		ApplicantID: applicantID,
		Since:       timestamptz(since),
	})
}

func (s *ticketStore) List(ctx context.Context, filter TicketFilter, limit, offset int32) ([]model.TicketSummary, error) {
	rows, err := s.queries.ListTickets(ctx, sqlc.ListTicketsParams{
		CompanyID:   filter.CompanyID,
		ApplicantID: filter.ApplicantID,
		Status:      statusParam(filter.Status),
		PageLimit:   limit,
		PageOffset:  offset,
	})
	if err != nil {
		return nil, err
	}

	tickets := make([]model.TicketSummary, len(rows))
	for i, row := range rows {
		tickets[i] = model.TicketSummary{
			Ticket: model.Ticket{
				ID:                    row.ID,
				CompanyID:             row.CompanyID,
				ApplicantID:           row.ApplicantID,
				Title:                 row.Title,
				Status:                model.TicketStatus(row.Status),
				ApplicantLastViewedAt: optionalTime(row.ApplicantLastViewedAt),
				CompanyLastViewedAt:   optionalTime(row.CompanyLastViewedAt),
				CreatedAt:             row.CreatedAt.Time,
				UpdatedAt:             row.UpdatedAt.Time,
			},
			Company: model.CompanySummary{
				ID:      row.CompanyID,
				Name:    row.CompanyName,
				LogoURL: row.CompanyLogoUrl,
			},
			Applicant: model.Participant{
				ID:        row.ApplicantID,
				Name:      row.ApplicantName,
				Email:     row.ApplicantEmail,
				AvatarURL: row.ApplicantAvatarUrl,
			},
			LastMessage: &model.TicketMessage{
				ID:        row.LastMessageID,
				TicketID:  row.ID,
				SenderID:  row.LastMessageSenderID,
				Content:   row.LastMessageContent,
				CreatedAt: row.LastMessageCreatedAt.Time,
			},
		}
	}
	return tickets, nil
}

func (s *ticketStore) Count(ctx context.Context, filter TicketFilter) (int64, error) {
	return s.queries.CountTickets(ctx, sqlc.CountTicketsParams{
		CompanyID:   filter.CompanyID,
		ApplicantID: filter.ApplicantID,
		Status:      statusParam(filter.Status),
	})
}

func (s *ticketStore) UpdateStatus(ctx context.Context, id int64, status model.TicketStatus) (*model.Ticket, error) {
	row, err := s.queries.UpdateTicketStatus(ctx, sqlc.UpdateTicketStatusParams{
		ID:     id,
		Status: string(status),
	})
	if err != nil {
		return nil, notFound(err)
	}
	return toTicketModel(row), nil
}

func (s *ticketStore) MarkViewed(ctx context.Context, id int64, byApplicant bool) error {
	if byApplicant {
		return s.queries.MarkTicketViewedByApplicant(ctx, id)
	}
	return s.queries.MarkTicketViewedByCompany(ctx, id)
}

func (s *ticketStore) RecordMessage(ctx context.Context, id int64, fromApplicant bool) (*model.Ticket, error) {
	var (
		row sqlc.CompanyTicket
		err error
	)
	if fromApplicant {
		row, err = s.queries.RecordApplicantTicketMessage(ctx, id)
	} else {
		row, err = s.queries.RecordCompanyTicketMessage(ctx, id)
	}
	if err != nil {
		return nil, notFound(err)
	}
	return toTicketModel(row), nil
}

func (s *ticketStore) CreateMessage(ctx context.Context, msg *model.TicketMessage) error {
	row, err := s.queries.CreateTicketMessage(ctx, sqlc.CreateTicketMessageParams{
		ID:       msg.ID,
		TicketID: msg.TicketID,
		SenderID: msg.SenderID,
		Content:  msg.Content,
	})
	if err != nil {
		return err
	}
	msg.ID = row.ID
	msg.CreatedAt = row.CreatedAt.Time
	return nil
}

func (s *ticketStore) ListMessages(ctx context.Context, ticketID int64, limit, offset int32) ([]model.TicketMessage, error) {
	rows, err := s.queries.ListTicketMessages(ctx, sqlc.ListTicketMessagesParams{
		TicketID: ticketID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}
	messages := make([]model.TicketMessage, len(rows))
	for i, row := range rows {
		messages[i] = model.TicketMessage{
			ID:        row.ID,
			TicketID:  row.TicketID,
			SenderID:  row.SenderID,
			Content:   row.Content,
			CreatedAt: row.CreatedAt.Time,
			Sender: &model.Participant{
				ID:        row.SenderID,
				Name:      row.SenderName,
				Email:     row.SenderEmail,
				AvatarURL: row.SenderAvatarUrl,
			},
		}
	}
	return messages, nil
}

func (s *ticketStore) CountMessages(ctx context.Context, ticketID int64) (int64, error) {
	return s.queries.CountTicketMessages(ctx, ticketID)
}

func statusParam(status *model.TicketStatus) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}

func toTicketModel(row sqlc.CompanyTicket) *model.Ticket {
	return &model.Ticket{
		ID:                    row.ID,
		CompanyID:             row.CompanyID,
		ApplicantID:           row.ApplicantID,
		Title:                 row.Title,
		Status:                model.TicketStatus(row.Status),
		ApplicantLastViewedAt: optionalTime(row.ApplicantLastViewedAt),
		CompanyLastViewedAt:   optionalTime(row.CompanyLastViewedAt),
		CreatedAt:             row.CreatedAt.Time,
		UpdatedAt:             row.UpdatedAt.Time,
	}
}
