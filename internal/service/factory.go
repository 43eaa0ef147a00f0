package service

import (
	"time"

	"joywork.app/api/core/config"
	"joywork.app/api/internal/notify"
	"joywork.app/api/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	notifier Notifier
	cfg      config.Config
}

func NewServices(stores *store.Stores, txRunner TxRunner, catalog *notify.Catalog, outbox Outbox, cfg config.Config) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		notifier: NewNotifier(stores.Companies(), stores.Users(), catalog, outbox),
		cfg:      cfg,
	}
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.stores.Sessions())
}

func (s *Services) Membership() MembershipResolver {
	return NewMembershipResolver(s.stores.Companies())
}

func (s *Services) Conversations() ConversationService {
	return NewConversationService(
		s.stores.Applications(),
		s.stores.Messages(),
		s.stores.Conversations(),
		s.stores.Users(),
		s.stores.Companies(),
		s.Membership(),
		s.notifier,
		s.cfg.DashboardURL,
	)
}

func (s *Services) Tickets() TicketService {
	return NewTicketService(
		s.txRunner,
		s.stores.Tickets(),
		s.stores.Companies(),
		s.stores.Users(),
		s.Membership(),
		s.notifier,
		s.cfg.Ticket,
		s.cfg.DashboardURL,
		time.Now,
	)
}
