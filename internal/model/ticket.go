package model

import "time"

type TicketStatus string

const (
	TicketStatusOpen      TicketStatus = "OPEN"
	TicketStatusResponded TicketStatus = "RESPONDED"
	TicketStatusClosed    TicketStatus = "CLOSED"
)

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusResponded, TicketStatusClosed:
		return true
	default:
		return false
	}
}

// TicketStatuses lists every status a ticket can be in.
func TicketStatuses() []TicketStatus {
	return []TicketStatus{TicketStatusOpen, TicketStatusResponded, TicketStatusClosed}
}

// IsActive reports whether the ticket counts against the per-company open limit.
func (s TicketStatus) IsActive() bool {
	return s == TicketStatusOpen || s == TicketStatusResponded
}

// TicketScope tells the caller which view a ticket listing was served from.
type TicketScope string

const (
	TicketScopeCompany TicketScope = "company"
	TicketScopeMine    TicketScope = "mine"
)

type Ticket struct {
	ID                    int64        `json:"id"`
	CompanyID             int64        `json:"company_id"`
	ApplicantID           int64        `json:"applicant_id"`
	Title                 string       `json:"title"`
	Status                TicketStatus `json:"status"`
	ApplicantLastViewedAt *time.Time   `json:"applicant_last_viewed_at,omitempty"`
	CompanyLastViewedAt   *time.Time   `json:"company_last_viewed_at,omitempty"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

func (t *Ticket) IsApplicant(userID int64) bool {
	return t.ApplicantID == userID
}

// LastViewedBy returns the read marker for the viewer's side of the ticket.
func (t *Ticket) LastViewedBy(viewerID int64) *time.Time {
	if t.IsApplicant(viewerID) {
		return t.ApplicantLastViewedAt
	}
	return t.CompanyLastViewedAt
}

type TicketMessage struct {
	ID        int64        `json:"id"`
	TicketID  int64        `json:"ticket_id"`
	SenderID  int64        `json:"sender_id"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	Sender    *Participant `json:"sender,omitempty"`
}

// TicketSummary is a ticket row as shown in a listing.
type TicketSummary struct {
	Ticket
	Company     CompanySummary `json:"company"`
	Applicant   Participant    `json:"applicant"`
	LastMessage *TicketMessage `json:"last_message,omitempty"`
	HasUnread   bool           `json:"has_unread"`
}

// HasUnreadFor reports whether the last message was written by the other
// side after the viewer last opened the ticket.
func (s *TicketSummary) HasUnreadFor(viewerID int64) bool {
	if s.LastMessage == nil || s.LastMessage.SenderID == viewerID {
		return false
	}
	viewed := s.LastViewedBy(viewerID)
	if viewed == nil {
		return true
	}
	return s.LastMessage.CreatedAt.After(*viewed)
}

type TicketPage struct {
	Scope TicketScope     `json:"scope"`
	Items []TicketSummary `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
