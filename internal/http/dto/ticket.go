package dto

import (
	"time"

	"joywork.app/api/internal/model"
)

type CreateTicketRequest struct {
	CompanyID int64  `json:"company_id,string" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
}

type SendTicketMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpdateTicketStatusRequest struct {
	Status model.TicketStatus `json:"status" binding:"required"`
}

type ListTicketsQuery struct {
	PageQuery
	CompanyID string `form:"company_id"`
	Status    string `form:"status"`
}

type TicketResponse struct {
	ID          int64              `json:"id,string"`
	CompanyID   int64              `json:"company_id,string"`
	ApplicantID int64              `json:"applicant_id,string"`
	Title       string             `json:"title"`
	Status      model.TicketStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func ToTicketResponse(t *model.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		CompanyID:   t.CompanyID,
		ApplicantID: t.ApplicantID,
		Title:       t.Title,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type TicketMessageResponse struct {
	ID        int64                `json:"id,string"`
	TicketID  int64                `json:"ticket_id,string"`
	SenderID  int64                `json:"sender_id,string"`
	Content   string               `json:"content"`
	CreatedAt time.Time            `json:"created_at"`
	Sender    *ParticipantResponse `json:"sender,omitempty"`
}

func ToTicketMessageResponse(m *model.TicketMessage) TicketMessageResponse {
	return TicketMessageResponse{
		ID:        m.ID,
		TicketID:  m.TicketID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		Sender:    ToParticipantResponse(m.Sender),
	}
}

type CreateTicketResponse struct {
	Ticket  TicketResponse        `json:"ticket"`
	Message TicketMessageResponse `json:"message"`
}

type TicketSummaryResponse struct {
	TicketResponse
	Company     CompanyBrief           `json:"company"`
	Applicant   ParticipantResponse    `json:"applicant"`
	LastMessage *TicketMessageResponse `json:"last_message,omitempty"`
	HasUnread   bool                   `json:"has_unread"`
}

func ToTicketSummaryResponse(s *model.TicketSummary) TicketSummaryResponse {
	resp := TicketSummaryResponse{
		TicketResponse: ToTicketResponse(&s.Ticket),
		Company:        ToCompanyBrief(s.Company),
		Applicant:      *ToParticipantResponse(&s.Applicant),
		HasUnread:      s.HasUnread,
	}
	if s.LastMessage != nil {
		last := ToTicketMessageResponse(s.LastMessage)
		resp.LastMessage = &last
	}
	return resp
}

type TicketListResponse struct {
	Scope model.TicketScope `json:"scope"`
	PageResponse[TicketSummaryResponse]
}

func ToTicketListResponse(p *model.TicketPage) TicketListResponse {
	page := &model.Page[model.TicketSummary]{
		Items: p.Items,
		Total: p.Total,
		Page:  p.Page,
		Limit: p.Limit,
	}
	return TicketListResponse{
		Scope:        p.Scope,
		PageResponse: ToPageResponse(page, ToTicketSummaryResponse),
	}
}
