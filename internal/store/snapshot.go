package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, snap SessionSnapshot) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO session_snapshots
		(session_id, data, updated_at, expires_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at,
			expires_at = excluded.expires_at`,
		snap.SessionID, snap.Data, snap.UpdatedAt.UnixMilli(), snap.ExpiresAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("save session snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Load(ctx context.Context, id string, now time.Time) (*SessionSnapshot, error) {
	var snap SessionSnapshot
	var updated, expires int64
	err := r.db.QueryRowContext(ctx, `SELECT session_id, data, updated_at, expires_at
		FROM session_snapshots WHERE session_id = ? AND expires_at > ?`,
		id, now.UnixMilli(),
	).Scan(&snap.SessionID, &snap.Data, &updated, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session snapshot: %w", err)
	}
	snap.UpdatedAt = time.UnixMilli(updated)
	snap.ExpiresAt = time.UnixMilli(expires)
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, now time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM session_snapshots WHERE expires_at <= ?`, now.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("prune session snapshots: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
