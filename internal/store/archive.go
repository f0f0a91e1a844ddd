package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type archiveRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *archiveRepo) Save(ctx context.Context, l ArchivedLesson) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	ts := l.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO archived_lessons
		(sequence, ts, lesson_id, author_name, subject, topic, reason, record)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, ts.UnixMilli(), l.LessonID, l.AuthorName, l.Subject, l.Topic, l.Reason, l.Record)
	if err != nil {
		return fmt.Errorf("archive lesson %s: %w", l.LessonID, err)
	}
	return nil
}

func (r *archiveRepo) List(ctx context.Context, limit int) ([]ArchivedLesson, error) {
	q := `SELECT id, sequence, ts, lesson_id, author_name, subject, topic, reason, record
		FROM archived_lessons ORDER BY sequence DESC`
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}
	defer rows.Close()

	var out []ArchivedLesson
	for rows.Next() {
		var l ArchivedLesson
		var ts int64
		if err := rows.Scan(&l.ID, &l.Sequence, &ts, &l.LessonID, &l.AuthorName,
			&l.Subject, &l.Topic, &l.Reason, &l.Record); err != nil {
			return nil, fmt.Errorf("scan archived lesson: %w", err)
		}
		l.Timestamp = time.UnixMilli(ts)
		out = append(out, l)
	}
	return out, rows.Err()
}
