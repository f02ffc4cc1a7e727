//go:build !integration

package usecase_test

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"serial-story-subscription/internal/domain"
	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/domain/ports/adapter"
	"serial-story-subscription/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// --- Story repository mock ---

type MockStoryRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.Story
	SaveErr error
}

func NewMockStoryRepo() *MockStoryRepo {
	return &MockStoryRepo{store: make(map[string]*model.Story)}
}

func (m *MockStoryRepo) Save(ctx context.Context, tx repository.Tx, story *model.Story) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *story
	m.store[story.ID] = &cp
	return nil
}

func (m *MockStoryRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MockStoryRepo) ListPublished(ctx context.Context, tx repository.Tx) ([]*model.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Story
	for _, s := range m.store {
		if s.Status == model.StoryStatusPublished {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockStoryRepo) CountPublished(ctx context.Context, tx repository.Tx) (int, error) {
	list, _ := m.ListPublished(ctx, tx)
	return len(list), nil
}

func (m *MockStoryRepo) Archive(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = model.StoryStatusArchived
	return nil
}

// --- Chapter repository mock ---

type MockChapterRepo struct {
	mu    sync.RWMutex
	store []*model.Chapter
}

func NewMockChapterRepo() *MockChapterRepo { return &MockChapterRepo{} }

func (m *MockChapterRepo) Save(ctx context.Context, tx repository.Tx, ch *model.Chapter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *ch
	m.store = append(m.store, &cp)
	return nil
}

func (m *MockChapterRepo) FindByStoryAndPosition(ctx context.Context, tx repository.Tx, storyID string, position int) (*model.Chapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ch := range m.store {
		if ch.StoryID == storyID && ch.Position == position {
			cp := *ch
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockChapterRepo) CountByStory(ctx context.Context, tx repository.Tx, storyID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, ch := range m.store {
		if ch.StoryID == storyID {
			n++
		}
	}
	return n, nil
}

// --- User repository mock ---

type MockUserRepo struct {
	mu    sync.RWMutex
	store map[string]*model.User
}

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{store: make(map[string]*model.User)}
}

func (m *MockUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *MockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.User
	for _, u := range m.store {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

// --- Subscription repository mock ---

type MockSubscriptionRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Subscription // by subscription ID

	InsertFunc func(ctx context.Context, tx repository.Tx, s *model.Subscription) error
	UpdateErr  error
}

func NewMockSubscriptionRepo() *MockSubscriptionRepo {
	return &MockSubscriptionRepo{store: make(map[string]*model.Subscription)}
}

func (m *MockSubscriptionRepo) Insert(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, tx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.store {
		// the unique (user_id, story_id) constraint
		if e.UserID == s.UserID && e.StoryID == s.StoryID {
			return domain.ErrAlreadyExists
		}
	}
	cp := *s
	m.store[s.ID] = &cp
	return nil
}

func (m *MockSubscriptionRepo) Update(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	m.store[s.ID] = &cp
	return nil
}

func (m *MockSubscriptionRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MockSubscriptionRepo) FindByUserAndStory(ctx context.Context, tx repository.Tx, userID, storyID string) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.store {
		if s.UserID == userID && s.StoryID == storyID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockSubscriptionRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Subscription
	for _, s := range m.store {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockSubscriptionRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Subscription
	for _, s := range m.store {
		if s.Status == model.SubscriptionStatusActive {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockSubscriptionRepo) CountByStatus(ctx context.Context, tx repository.Tx) (map[model.SubscriptionStatus]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[model.SubscriptionStatus]int)
	for _, s := range m.store {
		out[s.Status]++
	}
	return out, nil
}

// Len reports the number of persisted rows; tests use it to assert the
// idempotence law directly.
func (m *MockSubscriptionRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// --- Admin action repository mock ---

type MockAdminActionRepo struct {
	mu      sync.RWMutex
	actions []*model.AdminAction
}

func NewMockAdminActionRepo() *MockAdminActionRepo { return &MockAdminActionRepo{} }

func (m *MockAdminActionRepo) Insert(ctx context.Context, tx repository.Tx, a *model.AdminAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.actions = append(m.actions, &cp)
	return nil
}

func (m *MockAdminActionRepo) ListRecent(ctx context.Context, tx repository.Tx, limit int) ([]*model.AdminAction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.AdminAction, 0, len(m.actions))
	for i := len(m.actions) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, m.actions[i])
	}
	return out, nil
}

// --- Checkout gateway mock ---

type MockCheckoutGateway struct {
	mu       sync.RWMutex
	sessions map[string]*model.CheckoutSession

	CreateCalls    int
	CreateErr      error
	LastCreateReq  adapter.CreateSessionRequest
	RetrieveErr    error
	nextSessionSeq int
}

func NewMockCheckoutGateway() *MockCheckoutGateway {
	return &MockCheckoutGateway{sessions: make(map[string]*model.CheckoutSession)}
}

func (g *MockCheckoutGateway) Name() string { return "mock" }

func (g *MockCheckoutGateway) CreateSession(ctx context.Context, req adapter.CreateSessionRequest) (*model.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.CreateCalls++
	g.LastCreateReq = req
	if g.CreateErr != nil {
		return nil, g.CreateErr
	}
	g.nextSessionSeq++
	id := fmt.Sprintf("cs_test_%d", g.nextSessionSeq)
	sess := &model.CheckoutSession{
		ID:              id,
		PaymentStatus:   model.CheckoutPaymentStatusUnpaid,
		Metadata:        req.Metadata,
		AmountTotal:     req.UnitAmount,
		PaymentIntentID: "",
		RedirectURL:     "https://pay.example.test/" + id,
	}
	g.sessions[sess.ID] = sess
	cp := *sess
	return &cp, nil
}

func (g *MockCheckoutGateway) RetrieveSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.RetrieveErr != nil {
		return nil, g.RetrieveErr
	}
	sess, ok := g.sessions[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

// MarkPaid simulates the buyer completing payment out-of-band.
func (g *MockCheckoutGateway) MarkPaid(sessionID, paymentIntentID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if sess, ok := g.sessions[sessionID]; ok {
		sess.PaymentStatus = model.CheckoutPaymentStatusPaid
		sess.PaymentIntentID = paymentIntentID
	}
}

// SetMetadata overrides a session's metadata; tests use it to simulate a
// gateway returning stale or tampered correlation data.
func (g *MockCheckoutGateway) SetMetadata(sessionID string, meta model.CheckoutMetadata) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if sess, ok := g.sessions[sessionID]; ok {
		sess.Metadata = meta
	}
}

// --- Mailer mock ---

type MockMailer struct {
	mu      sync.Mutex
	Sent    []SentMail
	SendErr error
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

func NewMockMailer() *MockMailer { return &MockMailer{} }

func (m *MockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}
