package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tooley/tooley/internal/store"
)

// keepForever stands in for "no expiry" in the snapshot table.
const keepForever = 100 * 365 * 24 * time.Hour

// SQLStore keeps sessions in the local SQLite database. The terminal
// front-end uses it so an unfinished lesson survives a restart.
type SQLStore struct {
	repo store.SnapshotRepo
	ttl  time.Duration
	now  func() time.Time
}

// NewSQLStore stores sessions through repo. A zero ttl keeps them forever.
func NewSQLStore(repo store.SnapshotRepo, ttl time.Duration) *SQLStore {
	if ttl <= 0 {
		ttl = keepForever
	}
	return &SQLStore{repo: repo, ttl: ttl, now: time.Now}
}

func (s *SQLStore) Get(ctx context.Context, id string) (*Session, error) {
	return getOrCreate(ctx, s, id)
}

func (s *SQLStore) Load(ctx context.Context, id string) (*Session, error) {
	snap, err := s.repo.Load(ctx, id, s.now())
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, ErrNotFound
	}
	var sess Session
	if err := json.Unmarshal(snap.Data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w: %v", ErrCorrupt, err)
	}
	return &sess, nil
}

func (s *SQLStore) Save(ctx context.Context, sess *Session) error {
	now := s.now()
	sess.UpdatedAt = now
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.repo.Save(ctx, store.SessionSnapshot{
		SessionID: sess.ID,
		Data:      data,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	})
}

// Evict deletes snapshots last saved more than olderThan ago.
func (s *SQLStore) Evict(ctx context.Context, olderThan time.Duration) (int, error) {
	// expires_at = updated_at + ttl, so this cutoff selects updated_at <= now-olderThan.
	return s.repo.Prune(ctx, s.now().Add(-olderThan).Add(s.ttl))
}
