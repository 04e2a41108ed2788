package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/SpecHunter/internal/dashboard"
)

type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewMemoryStore keeps sessions in process. A zero ttl disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*Session),
	}
}

func (m *MemoryStore) Create(_ context.Context, state dashboard.State) (*Session, error) {
	now := m.now()
	s := &Session{ID: uuid.New(), State: state, CreatedAt: now, UpdatedAt: now}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	cp := *s
	return &cp, nil
}

func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || m.expired(s) {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) Update(_ context.Context, id uuid.UUID, fn UpdateFunc) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || m.expired(s) {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	next, err := fn(s.State)
	if err != nil {
		return nil, err
	}
	s.State = next
	s.UpdatedAt = m.now()
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) Sweep(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if m.expired(s) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) expired(s *Session) bool {
	return m.ttl > 0 && m.now().Sub(s.UpdatedAt) > m.ttl
}
