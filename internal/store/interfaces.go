package store

import (
	"context"
	"errors"
	"time"

	"joywork.app/api/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// SessionStore resolves sessions issued by the login service.
type SessionStore interface {
	GetValid(ctx context.Context, id int64) (*model.Session, error) // checks expiry
}

// CompanyStore defines the contract for company and membership data access
type CompanyStore interface {
	GetByID(ctx context.Context, id int64) (*model.Company, error)
	// GetMemberRole returns model.RoleNone and no error when the user is not a member.
	GetMemberRole(ctx context.Context, userID, companyID int64) (model.Role, error)
	ListMembersByRole(ctx context.Context, companyID int64, role model.Role) ([]model.User, error)
}

// ApplicationStore reads applications joined with their job's company.
type ApplicationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Application, error)
	// ListIDsForParticipant returns the applications whose conversation the user may see.
	ListIDsForParticipant(ctx context.Context, userID int64) ([]int64, error)
}

// MessageStore defines the contract for application conversation messages
type MessageStore interface {
	Create(ctx context.Context, msg *model.Message) error
	GetByID(ctx context.Context, id int64) (*model.Message, error)
	ListByApplication(ctx context.Context, applicationID int64, limit, offset int32) ([]model.Message, error)
	CountByApplication(ctx context.Context, applicationID int64) (int64, error)
	// MarkRead reports whether the message changed; messages sent by readerID never do.
	MarkRead(ctx context.Context, messageID, readerID int64) (bool, error)
	MarkApplicationRead(ctx context.Context, applicationID, readerID int64) (int64, error)
	CountUnread(ctx context.Context, applicationID, viewerID int64) (int64, error)
	CountUnreadForApplications(ctx context.Context, applicationIDs []int64, viewerID int64) (int64, error)
}

// ConversationStore builds the per-viewer conversation projection.
type ConversationStore interface {
	List(ctx context.Context, viewerID int64, limit, offset int32) ([]model.Conversation, error)
	Count(ctx context.Context, viewerID int64) (int64, error)
}

// TicketFilter narrows a ticket listing. Nil fields match everything.
type TicketFilter struct {
	CompanyID   *int64
	ApplicantID *int64
	Status      *model.TicketStatus
}

// TicketStore defines the contract for support tickets and their messages
type TicketStore interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	GetByID(ctx context.Context, id int64) (*model.Ticket, error)
	CountActiveForCompany(ctx context.Context, applicantID, companyID int64) (int64, error)
	CountCreatedSince(ctx context.Context, applicantID int64, since time.Time) (int64, error)
	List(ctx context.Context, filter TicketFilter, limit, offset int32) ([]model.TicketSummary, error)
	Count(ctx context.Context, filter TicketFilter) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.TicketStatus) (*model.Ticket, error)
	// MarkViewed bumps the read marker on the applicant's or the company's side.
	MarkViewed(ctx context.Context, id int64, byApplicant bool) error
	// RecordMessage forces the status for the sender's side and bumps its read marker.
	RecordMessage(ctx context.Context, id int64, fromApplicant bool) (*model.Ticket, error)

	CreateMessage(ctx context.Context, msg *model.TicketMessage) error
	ListMessages(ctx context.Context, ticketID int64, limit, offset int32) ([]model.TicketMessage, error)
	CountMessages(ctx context.Context, ticketID int64) (int64, error)
}
