package service_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"joywork.app/api/internal/model"
	"joywork.app/api/internal/notify"
	"joywork.app/api/internal/service"
	"joywork.app/api/internal/store"
)

// world is an in-memory backing for every store the services use.
// Stores built from it share state, so a scenario reads like the database would.
type world struct {
	mu     sync.Mutex
	now    time.Time
	seq    int64
	frozen bool // every insert shares w.now, like rows written in one instant

	msgSeq         map[int64]int64

	users          map[int64]*model.User
	companies      map[int64]*model.Company
	roles          map[[2]int64]model.Role
	apps           map[int64]*model.Application
	messages       []*model.Message
	tickets        map[int64]*model.Ticket
	ticketMessages []*model.TicketMessage
}

func newWorld() *world {
	return &world{
		now:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		msgSeq:    map[int64]int64{},
		users:     map[int64]*model.User{},
		companies: map[int64]*model.Company{},
		roles:     map[[2]int64]model.Role{},
		apps:      map[int64]*model.Application{},
		tickets:   map[int64]*model.Ticket{},
	}
}

func (w *world) clock() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.now
}

func (w *world) advance(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.now = w.now.Add(d)
}

// tick keeps insertion order visible in timestamps unless the world is
// frozen; callers hold w.mu.
func (w *world) tick() time.Time {
	w.seq++
	if w.frozen {
		return w.now
	}
	return w.now.Add(time.Duration(w.seq) * time.Millisecond)
}

// insertMessage stores msg the way the messages table does: created_at from
// the clock and a seq in insertion order. Callers hold w.mu.
func (w *world) insertMessage(msg *model.Message) {
	msg.IsRead = false
	msg.CreatedAt = w.tick()
	w.msgSeq[msg.ID] = w.seq
	cp := *msg
	cp.Sender = nil
	w.messages = append(w.messages, &cp)
}

// addMessage seeds a message with a caller-chosen id.
func (w *world) addMessage(id, applicationID, senderID int64, content string) {
	w.insertMessage(&model.Message{
		ID:            id,
		ApplicationID: applicationID,
		SenderID:      senderID,
		Content:       content,
		Kind:          model.MessageKindText,
	})
}

// newer orders messages by (created_at, seq), never by id.
func (w *world) newer(a, b *model.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return w.msgSeq[a.ID] > w.msgSeq[b.ID]
}

func (w *world) addUser(id int64, name string) {
	w.users[id] = &model.User{ID: id, Name: name, Email: name + "@joywork.test"}
}

func (w *world) addCompany(id int64, name string) {
	w.companies[id] = &model.Company{ID: id, Name: name, Slug: name}
}

func (w *world) addMember(userID, companyID int64, role model.Role) {
	w.roles[[2]int64{userID, companyID}] = role
}

func (w *world) removeMember(userID, companyID int64) {
	delete(w.roles, [2]int64{userID, companyID})
}

func (w *world) addApplication(id, companyID, applicantID int64, jobTitle string) {
	w.apps[id] = &model.Application{
		ID:          id,
		JobID:       id * 10,
		JobTitle:    jobTitle,
		CompanyID:   companyID,
		ApplicantID: applicantID,
		Status:      "APPLIED",
	}
}

func (w *world) ticket(id int64) *model.Ticket {
	w.mu.Lock()
	defer w.mu.Unlock()
	t := *w.tickets[id]
	return &t
}

func (w *world) participant(userID int64) *model.Participant {
	u, ok := w.users[userID]
	if !ok {
		return nil
	}
	p := u.Participant()
	return &p
}

func (w *world) visible(app *model.Application, userID int64) bool {
	if app.ApplicantID == userID {
		return true
	}
	_, ok := w.roles[[2]int64{userID, app.CompanyID}]
	return ok
}

// --- users / sessions ------------------------------------------------------

type worldUsers struct{ w *world }

func (s worldUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	u, ok := s.w.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type mockSessionStore struct {
	getValidFn func(ctx context.Context, id int64) (*model.Session, error)
}

func (m *mockSessionStore) GetValid(ctx context.Context, id int64) (*model.Session, error) {
	if m.getValidFn != nil {
		return m.getValidFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

type mockUserStore struct {
	getByIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

// --- companies -------------------------------------------------------------

type worldCompanies struct{ w *world }

func (s worldCompanies) GetByID(_ context.Context, id int64) (*model.Company, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	c, ok := s.w.companies[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s worldCompanies) GetMemberRole(_ context.Context, userID, companyID int64) (model.Role, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	return s.w.roles[[2]int64{userID, companyID}], nil
}

func (s worldCompanies) ListMembersByRole(_ context.Context, companyID int64, role model.Role) ([]model.User, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	var out []model.User
	for key, r := range s.w.roles {
		if key[1] == companyID && r == role {
			out = append(out, *s.w.users[key[0]])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type mockCompanyStore struct {
	getByIDFn           func(ctx context.Context, id int64) (*model.Company, error)
	getMemberRoleFn     func(ctx context.Context, userID, companyID int64) (model.Role, error)
	listMembersByRoleFn func(ctx context.Context, companyID int64, role model.Role) ([]model.User, error)
}

func (m *mockCompanyStore) GetByID(ctx context.Context, id int64) (*model.Company, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockCompanyStore) GetMemberRole(ctx context.Context, userID, companyID int64) (model.Role, error) {
	if m.getMemberRoleFn != nil {
		return m.getMemberRoleFn(ctx, userID, companyID)
	}
	return model.RoleNone, nil
}

func (m *mockCompanyStore) ListMembersByRole(ctx context.Context, companyID int64, role model.Role) ([]model.User, error) {
	if m.listMembersByRoleFn != nil {
		return m.listMembersByRoleFn(ctx, companyID, role)
	}
	return []model.User{}, nil
}

// --- applications / messages / conversations -------------------------------

type worldApplications struct{ w *world }

func (s worldApplications) GetByID(_ context.Context, id int64) (*model.Application, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	a, ok := s.w.apps[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s worldApplications) ListIDsForParticipant(_ context.Context, userID int64) ([]int64, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	ids := []int64{}
	for id, app := range s.w.apps {
		if s.w.visible(app, userID) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type worldMessages struct {
	w        *world
	createFn func(ctx context.Context, msg *model.Message) error
}

func (s worldMessages) Create(ctx context.Context, msg *model.Message) error {
	if s.createFn != nil {
		if err := s.createFn(ctx, msg); err != nil {
			return err
		}
	}
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	s.w.insertMessage(msg)
	return nil
}

func (s worldMessages) GetByID(_ context.Context, id int64) (*model.Message, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	for _, m := range s.w.messages {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s worldMessages) ListByApplication(_ context.Context, applicationID int64, limit, offset int32) ([]model.Message, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	var all []model.Message
	for _, m := range s.w.messages {
		if m.ApplicationID == applicationID {
			cp := *m
			cp.Sender = s.w.participant(m.SenderID)
			all = append(all, cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return s.w.newer(&all[i], &all[j]) })
	return window(all, limit, offset)
}

func (s worldMessages) CountByApplication(_ context.Context, applicationID int64) (int64, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	var n int64
	for _, m := range s.w.messages {
		if m.ApplicationID == applicationID {
			n++
		}
	}
	return n, nil
}

func (s worldMessages) MarkRead(_ context.Context, messageID, readerID int64) (bool, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	for _, m := range s.w.messages {
		if m.ID == messageID && m.SenderID != readerID && !m.IsRead {
			m.IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (s worldMessages) MarkApplicationRead(_ context.Context, applicationID, readerID int64) (int64, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	var n int64
	for _, m := range s.w.messages {
		if m.ApplicationID == applicationID && m.SenderID != readerID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

func (s worldMessages) CountUnread(_ context.Context, applicationID, viewerID int64) (int64, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	return s.w.unread(applicationID, viewerID), nil
}

func (s worldMessages) CountUnreadForApplications(_ context.Context, applicationIDs []int64, viewerID int64) (int64, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	var n int64
	for _, id := range applicationIDs {
		n += s.w.unread(id, viewerID)
	}
	return n, nil
}

func (w *world) unread(applicationID, viewerID int64) int64 {
	var n int64
	for _, m := range w.messages {
		if m.ApplicationID == applicationID && m.SenderID != viewerID && !m.IsRead {
			n++
		}
	}
	return n
}

type worldConversations struct{ w *world }

func (s worldConversations) all(viewerID int64) []model.Conversation {
	var out []model.Conversation
	for _, app := range s.w.apps {
		if !s.w.visible(app, viewerID) {
			continue
		}
		var last *model.Message
		for _, m := range s.w.messages {
			if m.ApplicationID == app.ID && (last == nil || s.w.newer(m, last)) {
				cp := *m
				last = &cp
			}
		}
		if last == nil {
			continue
		}
		company := s.w.companies[app.CompanyID]
		out = append(out, model.Conversation{
			ApplicationID:     app.ID,
			ApplicationStatus: app.Status,
			JobID:             app.JobID,
			JobTitle:          app.JobTitle,
			Company:           model.CompanySummary{ID: company.ID, Name: company.Name},
			Applicant:         *s.w.participant(app.ApplicantID),
			LastMessage:       last,
			UnreadCount:       s.w.unread(app.ID, viewerID),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].LastMessage.CreatedAt, out[j].LastMessage.CreatedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return out[i].ApplicationID > out[j].ApplicationID
	})
	return out
}

func (s worldConversations) List(_ context.Context, viewerID int64, limit, offset int32) ([]model.Conversation, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	return window(s.all(viewerID), limit, offset)
}

func (s worldConversations) Count(_ context.Context, viewerID int64) (int64, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	return int64(len(s.all(viewerID))), nil
}

// --- tickets ---------------------------------------------------------------

type worldTickets struct{ w *world }

func (s worldTickets) Create(_ context.Context, ticket *model.Ticket) error {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	now := s.w.tick()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	ticket.ApplicantLastViewedAt = &now
	cp := *ticket
	s.w.tickets[ticket.ID] = &cp
	return nil
}

func (s worldTickets) GetByID(_ context.Context, id int64) (*model.Ticket, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	t, ok := s.w.tickets[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s worldTickets) CountActiveForCompany(_ context.Context, applicantID, companyID int64) (int64, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	var n int64
	for _, t := range s.w.tickets {
		if t.ApplicantID == applicantID && t.CompanyID == companyID && t.Status.IsActive() {
			n++
		}
	}
	return n, nil
}

func (s worldTickets) CountCreatedSince(_ context.Context, applicantID int64, since time.Time) (int64, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	var n int64
	for _, t := range s.w.tickets {
		if t.ApplicantID == applicantID && !t.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s worldTickets) matches(t *model.Ticket, f store.TicketFilter) bool {
	if f.CompanyID != nil && t.CompanyID != *f.CompanyID {
		return false
	}
	if f.ApplicantID != nil && t.ApplicantID != *f.ApplicantID {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	return true
}

func (s worldTickets) List(_ context.Context, filter store.TicketFilter, limit, offset int32) ([]model.TicketSummary, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	var out []model.TicketSummary
	for _, t := range s.w.tickets {
		if !s.matches(t, filter) {
			continue
		}
		summary := model.TicketSummary{
			Ticket:    *t,
			Company:   model.CompanySummary{ID: t.CompanyID, Name: s.w.companies[t.CompanyID].Name},
			Applicant: *s.w.participant(t.ApplicantID),
		}
		for _, m := range s.w.ticketMessages {
			if m.TicketID == t.ID {
				cp := *m
				summary.LastMessage = &cp
			}
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return window(out, limit, offset)
}

func (s worldTickets) Count(_ context.Context, filter store.TicketFilter) (int64, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	var n int64
	for _, t := range s.w.tickets {
		if s.matches(t, filter) {
			n++
		}
	}
	return n, nil
}

func (s worldTickets) UpdateStatus(_ context.Context, id int64, status model.TicketStatus) (*model.Ticket, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	t, ok := s.w.tickets[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = s.w.tick()
	cp := *t
	return &cp, nil
}

func (s worldTickets) MarkViewed(_ context.Context, id int64, byApplicant bool) error {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	t, ok := s.w.tickets[id]
	if !ok {
		return nil
	}
	now := s.w.tick()
	if byApplicant {
		t.ApplicantLastViewedAt = &now
	} else {
		t.CompanyLastViewedAt = &now
	}
	return nil
}

func (s worldTickets) RecordMessage(_ context.Context, id int64, fromApplicant bool) (*model.Ticket, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	t, ok := s.w.tickets[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	now := s.w.tick()
	t.UpdatedAt = now
	if fromApplicant {
		t.Status = model.TicketStatusOpen
		t.ApplicantLastViewedAt = &now
	} else {
		t.Status = model.TicketStatusResponded
		t.CompanyLastViewedAt = &now
	}
	cp := *t
	return &cp, nil
}

func (s worldTickets) CreateMessage(_ context.Context, msg *model.TicketMessage) error {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	msg.CreatedAt = s.w.tick()
	cp := *msg
	s.w.ticketMessages = append(s.w.ticketMessages, &cp)
	return nil
}

func (s worldTickets) ListMessages(_ context.Context, ticketID int64, limit, offset int32) ([]model.TicketMessage, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	var out []model.TicketMessage
	for _, m := range s.w.ticketMessages {
		if m.TicketID == ticketID {
			cp := *m
			cp.Sender = s.w.participant(m.SenderID)
			out = append(out, cp)
		}
	}
	return window(out, limit, offset)
}

func (s worldTickets) CountMessages(_ context.Context, ticketID int64) (int64, error) {
	s.w.mu.Lock()
	defer s.w.mu.Unlock()
	var n int64
	for _, m := range s.w.ticketMessages {
		if m.TicketID == ticketID {
			n++
		}
	}
	return n, nil
}

// window pages like LIMIT/OFFSET, including Postgres' refusal of a
// negative offset.
func window[T any](items []T, limit, offset int32) ([]T, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("OFFSET must not be negative: %d", offset)
	}
	if int(offset) >= len(items) {
		return []T{}, nil
	}
	end := int(offset + limit)
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], nil
}

// --- transactions ----------------------------------------------------------

type worldStores struct{ w *world }

func (s worldStores) Tickets() store.TicketStore {
	return worldTickets{w: s.w}
}

type mockTxRunner struct {
	provider  service.StoreProvider
	withTxFn  func(ctx context.Context, fn func(stores service.StoreProvider) error) error
	callCount int
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	m.callCount++
	if m.withTxFn != nil {
		return m.withTxFn(ctx, fn)
	}
	return fn(m.provider)
}

// --- notifications ---------------------------------------------------------

type notifyCall struct {
	companyID int64
	userID    int64
	kind      model.NotificationKind
	data      notify.Data
}

type mockNotifier struct {
	mu                    sync.Mutex
	calls                 []notifyCall
	notifyCompanyOwnersFn func(ctx context.Context, companyID int64, kind model.NotificationKind, data notify.Data) error
	notifyUserFn          func(ctx context.Context, userID int64, kind model.NotificationKind, data notify.Data) error
}

func (m *mockNotifier) NotifyCompanyOwners(ctx context.Context, companyID int64, kind model.NotificationKind, data notify.Data) error {
	m.mu.Lock()
	m.calls = append(m.calls, notifyCall{companyID: companyID, kind: kind, data: data})
	m.mu.Unlock()
	if m.notifyCompanyOwnersFn != nil {
		return m.notifyCompanyOwnersFn(ctx, companyID, kind, data)
	}
	return nil
}

func (m *mockNotifier) NotifyUser(ctx context.Context, userID int64, kind model.NotificationKind, data notify.Data) error {
	m.mu.Lock()
	m.calls = append(m.calls, notifyCall{userID: userID, kind: kind, data: data})
	m.mu.Unlock()
	if m.notifyUserFn != nil {
		return m.notifyUserFn(ctx, userID, kind, data)
	}
	return nil
}

type mockOutbox struct {
	enqueueFn func(ctx context.Context, n model.Notification) error
	sent      []model.Notification
}

func (m *mockOutbox) EnqueueNotification(ctx context.Context, n model.Notification) error {
	if m.enqueueFn != nil {
		if err := m.enqueueFn(ctx, n); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, n)
	return nil
}
