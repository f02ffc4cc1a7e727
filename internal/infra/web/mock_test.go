//go:build !integration

package web

import (
	"context"
	"fmt"
	"sync"

	"serial-story-subscription/internal/domain"
	"serial-story-subscription/internal/domain/model"
	"serial-story-subscription/internal/domain/ports/adapter"
	"serial-story-subscription/internal/domain/ports/repository"
)

// --- Mock Repositories (Ports) ---

type mockStoryRepo struct {
	repository.StoryRepository // Embed interface for forward compatibility
	mu                         sync.Mutex
	stories                    map[string]*model.Story
	ListError                  error
}

func newMockStoryRepo() *mockStoryRepo {
	return &mockStoryRepo{stories: map[string]*model.Story{}}
}

func (m *mockStoryRepo) Save(ctx context.Context, tx repository.Tx, s *model.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.stories[s.ID] = &cp
	return nil
}

func (m *mockStoryRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stories[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockStoryRepo) ListPublished(ctx context.Context, tx repository.Tx) ([]*model.Story, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Story
	for _, s := range m.stories {
		if s.IsPublished() {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockStoryRepo) CountPublished(ctx context.Context, tx repository.Tx) (int, error) {
	list, err := m.ListPublished(ctx, tx)
	return len(list), err
}

func (m *mockStoryRepo) Archive(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stories[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = model.StoryStatusArchived
	return nil
}

type mockUserRepo struct {
	repository.UserRepository // Embed interface
	mu                        sync.Mutex
	users                     []*model.User
	ListError                 error
	CountError                error
}

func (m *mockUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.ErrAlreadyExists
		}
	}
	cp := *u
	m.users = append(m.users, &cp)
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.User, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	end := offset + limit
	if end > len(m.users) {
		end = len(m.users)
	}
	if offset >= len(m.users) || offset > end {
		return []*model.User{}, nil
	}
	return m.users[offset:end], nil
}

func (m *mockUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

type mockSubRepo struct {
	repository.SubscriptionRepository // Embed interface
	mu                                sync.Mutex
	subs                              []*model.Subscription
	InsertError                       error
}

func (m *mockSubRepo) Insert(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.subs {
		if existing.UserID == s.UserID && existing.StoryID == s.StoryID {
			return domain.ErrAlreadyExists
		}
	}
	cp := *s
	m.subs = append(m.subs, &cp)
	return nil
}

func (m *mockSubRepo) Update(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.subs {
		if existing.ID == s.ID {
			cp := *s
			m.subs[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockSubRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSubRepo) FindByUserAndStory(ctx context.Context, tx repository.Tx, userID, storyID string) (*model.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		if s.UserID == userID && s.StoryID == storyID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSubRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Subscription
	for _, s := range m.subs {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockSubRepo) CountByStatus(ctx context.Context, tx repository.Tx) (map[model.SubscriptionStatus]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[model.SubscriptionStatus]int{}
	for _, s := range m.subs {
		out[s.Status]++
	}
	return out, nil
}

type mockAuditRepo struct {
	repository.AdminActionRepository // Embed interface
	mu                               sync.Mutex
	actions                          []*model.AdminAction
}

func (m *mockAuditRepo) Insert(ctx context.Context, tx repository.Tx, a *model.AdminAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, a)
	return nil
}

func (m *mockAuditRepo) ListRecent(ctx context.Context, tx repository.Tx, limit int) ([]*model.AdminAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.AdminAction, 0, limit)
	for i := len(m.actions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.actions[i])
	}
	return out, nil
}

// --- Mock checkout gateway ---

type mockGateway struct {
	mu       sync.Mutex
	sessions map[string]*model.CheckoutSession
	seq      int
	// CreateError simulates provider outages.
	CreateError error
}

func newMockGateway() *mockGateway {
	return &mockGateway{sessions: map[string]*model.CheckoutSession{}}
}

func (g *mockGateway) Name() string { return "mock" }

func (g *mockGateway) CreateSession(ctx context.Context, req adapter.CreateSessionRequest) (*model.CheckoutSession, error) {
	if g.CreateError != nil {
		return nil, g.CreateError
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	sess := &model.CheckoutSession{
		ID:            fmt.Sprintf("cs_test_%d", g.seq),
		PaymentStatus: model.CheckoutPaymentStatusUnpaid,
		Metadata:      req.Metadata,
		AmountTotal:   req.UnitAmount,
		RedirectURL:   "https://pay.example/" + fmt.Sprintf("cs_test_%d", g.seq),
	}
	g.sessions[sess.ID] = sess
	return sess, nil
}

func (g *mockGateway) RetrieveSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess, ok := g.sessions[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (g *mockGateway) markPaid(sessionID, paymentIntentID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if sess, ok := g.sessions[sessionID]; ok {
		sess.PaymentStatus = model.CheckoutPaymentStatusPaid
		sess.PaymentIntentID = paymentIntentID
	}
}
