package auth

// In-memory store fakes used across the auth tests. They honor the same
// contracts as the MySQL repositories: lookups return (nil, nil) when
// absent, Insert of a duplicate username fails with ErrUsernameTaken, and
// MarkConsumed is conditional on the row still being active with no child.

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/todo-auth/internal/model"
)

type memUserStore struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.User
	byName map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byID: map[int64]*model.User{}, byName: map[string]*model.User{}}
}

func (m *memUserStore) Insert(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.byName[u.Name]; taken {
		return ErrUsernameTaken
	}
	m.nextID++
	u.ID = m.nextID
	cp := *u
	m.byID[u.ID] = &cp
	m.byName[u.Name] = &cp
	return nil
}

func (m *memUserStore) FindByName(_ context.Context, name string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byName[name]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserStore) FindByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserStore) delete(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		delete(m.byName, u.Name)
		delete(m.byID, id)
	}
}

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*model.RefreshToken
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: map[string]*model.RefreshToken{}}
}

func (m *memTokenStore) Find(_ context.Context, value string) (*model.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[value]
	if !ok {
		return nil, nil
	}
	return copyToken(t), nil
}

func (m *memTokenStore) Insert(_ context.Context, t *model.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[t.Token] = copyToken(t)
	return nil
}

func (m *memTokenStore) CountWithValue(_ context.Context, value string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[value]; ok {
		return 1, nil
	}
	return 0, nil
}

func (m *memTokenStore) MarkConsumed(_ context.Context, value, child string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[value]
	if !ok || !t.Active || t.TokenChild != nil {
		return false, nil
	}
	t.Active = false
	t.TokenChild = &child
	return true, nil
}

func (m *memTokenStore) Deactivate(_ context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tokens[value]; ok {
		t.Active = false
	}
	return nil
}

func (m *memTokenStore) activeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tokens {
		if t.Active {
			n++
		}
	}
	return n
}

// put stores an arbitrary row, for tests that need hand-built chains.
func (m *memTokenStore) put(t *model.RefreshToken) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[t.Token] = copyToken(t)
}

func copyToken(t *model.RefreshToken) *model.RefreshToken {
	cp := *t
	if t.TokenChild != nil {
		child := *t.TokenChild
		cp.TokenChild = &child
	}
	return &cp
}

// fakeClock is a mutable time source shared between a test and the service
// under test.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// recordingSink captures reuse reports emitted by the rotation engine.
type recordingSink struct {
	mu      sync.Mutex
	reports []ReuseReport
}

func (s *recordingSink) TokenReuseDetected(_ context.Context, report ReuseReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
}

func (s *recordingSink) all() []ReuseReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ReuseReport, len(s.reports))
	copy(out, s.reports)
	return out
}
