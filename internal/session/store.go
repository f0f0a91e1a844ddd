package session

import (
	"context"
	"errors"
	"time"
)

// Store is the session repository.
type Store interface {
	// Get returns the live session for id, creating a fresh one when none
	// exists or the previous one expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Load returns the live session for id or ErrNotFound.
	Load(ctx context.Context, id string) (*Session, error)

	// Save stores s and refreshes its expiry.
	Save(ctx context.Context, s *Session) error

	// Evict removes sessions idle for longer than olderThan and reports
	// how many were removed.
	Evict(ctx context.Context, olderThan time.Duration) (int, error)
}

func getOrCreate(ctx context.Context, st Store, id string) (*Session, error) {
	s, err := st.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return New(id), nil
	}
	return s, err
}
