package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// BlobRepo is a single versioned value in the blobs table. Versions are
// decimal integers starting at "1".
type BlobRepo struct {
	db  *sql.DB
	key string
}

// Read returns the stored bytes and their version, or ErrBlobNotFound.
func (b *BlobRepo) Read(ctx context.Context) ([]byte, string, error) {
	var data []byte
	var version int64
	err := b.db.QueryRowContext(ctx,
		`SELECT data, version FROM blobs WHERE key = ?`, b.key,
	).Scan(&data, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrBlobNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("read blob %q: %w", b.key, err)
	}
	return data, strconv.FormatInt(version, 10), nil
}

// Write stores data if version still matches. An empty version only
// succeeds when nothing is stored yet.
func (b *BlobRepo) Write(ctx context.Context, data []byte, version string) error {
	if version == "" {
		res, err := b.db.ExecContext(ctx,
			`INSERT INTO blobs (key, data, version) VALUES (?, ?, 1)
			ON CONFLICT (key) DO NOTHING`, b.key, data)
		if err != nil {
			return fmt.Errorf("create blob %q: %w", b.key, err)
		}
		return conflictIfUntouched(res)
	}

	v, err := strconv.ParseInt(version, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: malformed version %q", ErrBlobConflict, version)
	}
	res, err := b.db.ExecContext(ctx,
		`UPDATE blobs SET data = ?, version = version + 1 WHERE key = ? AND version = ?`,
		data, b.key, v)
	if err != nil {
		return fmt.Errorf("update blob %q: %w", b.key, err)
	}
	return conflictIfUntouched(res)
}

func conflictIfUntouched(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBlobConflict
	}
	return nil
}
