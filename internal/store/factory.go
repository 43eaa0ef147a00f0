package store

import (
	"joywork.app/api/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.queries)
}

func (s *Stores) Companies() CompanyStore {
	return newCompanyStore(s.queries)
}

func (s *Stores) Applications() ApplicationStore {
	return newApplicationStore(s.queries)
}

func (s *Stores) Messages() MessageStore {
	return newMessageStore(s.queries)
}

func (s *Stores) Conversations() ConversationStore {
	return newConversationStore(s.queries)
}

func (s *Stores) Tickets() TicketStore {
	return newTicketStore(s.queries)
}
