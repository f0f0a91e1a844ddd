package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tooley/tooley/internal/i18n"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestMemoryStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	m := NewMemoryStore(ttl, nil)
	m.now = clock.now
	return m, clock
}

func TestMemoryStore_GetCreates(t *testing.T) {
	m, _ := newTestMemoryStore(time.Hour)
	s, err := m.Get(t.Context(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.ID != "u1" || s.State != StateIdle || s.Locale != i18n.English {
		t.Errorf("unexpected fresh session %+v", s)
	}
	if m.Len() != 0 {
		t.Error("Get must not store until Save")
	}
}

func TestMemoryStore_SaveAndLoad(t *testing.T) {
	m, clock := newTestMemoryStore(time.Hour)
	s := New("u1")
	s.State = StateAwaitingTopic
	if err := m.Save(t.Context(), s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !s.UpdatedAt.Equal(clock.t) {
		t.Errorf("Save should stamp UpdatedAt")
	}

	s.State = StateAwaitingAges // mutating the caller's copy must not leak
	got, err := m.Load(t.Context(), "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.State != StateAwaitingTopic {
		t.Errorf("State = %q, want awaiting_topic", got.State)
	}
}

func TestMemoryStore_LazyExpiry(t *testing.T) {
	m, clock := newTestMemoryStore(time.Hour)
	s := New("u1")
	s.State = StateAwaitingStyle
	_ = m.Save(t.Context(), s)

	clock.advance(59 * time.Minute)
	if _, err := m.Load(t.Context(), "u1"); err != nil {
		t.Fatalf("session should still be live: %v", err)
	}

	clock.advance(2 * time.Minute)
	if _, err := m.Load(t.Context(), "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if m.Len() != 0 {
		t.Error("expired session should be dropped on access")
	}
	got, _ := m.Get(t.Context(), "u1")
	if got.State != StateIdle {
		t.Errorf("expired session should come back fresh, got %q", got.State)
	}
}

func TestMemoryStore_NoTTL(t *testing.T) {
	m, clock := newTestMemoryStore(0)
	_ = m.Save(t.Context(), New("u1"))
	clock.advance(1000 * time.Hour)
	if _, err := m.Load(t.Context(), "u1"); err != nil {
		t.Fatalf("zero ttl should never expire: %v", err)
	}
}

func TestMemoryStore_Evict(t *testing.T) {
	m, clock := newTestMemoryStore(time.Hour)
	_ = m.Save(t.Context(), New("old"))
	clock.advance(30 * time.Minute)
	_ = m.Save(t.Context(), New("new"))
	clock.advance(20 * time.Minute)

	n, err := m.Evict(t.Context(), 40*time.Minute)
	if err != nil {
		t.Fatalf("Evict: %v", err)
	}
	if n != 1 || m.Len() != 1 {
		t.Fatalf("evicted %d, left %d; want 1 and 1", n, m.Len())
	}
	if _, err := m.Load(t.Context(), "new"); err != nil {
		t.Errorf("recent session evicted: %v", err)
	}
}

func TestMemoryStore_Janitor(t *testing.T) {
	m := NewMemoryStore(10*time.Millisecond, nil)
	_ = m.Save(t.Context(), New("u1"))

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	m.StartJanitor(ctx, 5*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for m.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if m.Len() != 0 {
		t.Fatal("janitor did not evict the idle session")
	}
}
