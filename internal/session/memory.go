package session

import (
	"context"
	"sync"
	"time"

	"github.com/tooley/tooley/internal/logger"
)

// MemoryStore keeps sessions in process memory. Expired sessions are
// dropped lazily on access and by the janitor.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	log      *logger.Logger
}

// NewMemoryStore creates a store whose sessions expire after ttl of
// inactivity. A zero ttl keeps them forever.
func NewMemoryStore(ttl time.Duration, log *logger.Logger) *MemoryStore {
	if log == nil {
		log = logger.Nop()
	}
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	return getOrCreate(ctx, m, id)
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if m.expired(s) {
		m.mu.Lock()
		if cur, ok := m.sessions[id]; ok && m.expired(cur) {
			delete(m.sessions, id)
		}
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	c := s.Clone()
	c.UpdatedAt = m.now()
	s.UpdatedAt = c.UpdatedAt

	m.mu.Lock()
	m.sessions[s.ID] = c
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Evict(_ context.Context, olderThan time.Duration) (int, error) {
	cutoff := m.now().Add(-olderThan)

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len reports how many sessions are held, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartJanitor evicts expired sessions every interval until ctx is done.
// It does nothing when the store has no ttl.
func (m *MemoryStore) StartJanitor(ctx context.Context, every time.Duration) {
	if m.ttl <= 0 || every <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n, _ := m.Evict(ctx, m.ttl); n > 0 {
					m.log.Debug("evicted idle sessions", "count", n)
				}
			}
		}
	}()
}

func (m *MemoryStore) expired(s *Session) bool {
	return m.ttl > 0 && m.now().Sub(s.UpdatedAt) > m.ttl
}
