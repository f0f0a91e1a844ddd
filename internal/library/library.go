package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tooley/tooley/internal/lesson"
	"github.com/tooley/tooley/internal/logger"
	"github.com/tooley/tooley/internal/store"
)

// DefaultCap is how many records the document keeps. Older ones fall off
// the end.
const DefaultCap = 1000

// ErrUnavailable wraps every failure to reach or decode the document. The
// lesson was not persisted.
var ErrUnavailable = errors.New("library unavailable")

// Library is the shared lesson collection, newest first, stored as one JSON
// array in a Blob.
type Library struct {
	blob    Blob
	archive store.ArchiveRepo
	cap     int
	log     *logger.Logger
}

// Option configures a Library.
type Option func(*Library)

// WithCap overrides DefaultCap.
func WithCap(n int) Option {
	return func(l *Library) {
		if n > 0 {
			l.cap = n
		}
	}
}

// WithArchive keeps lessons locally when the shared document is unreachable.
func WithArchive(a store.ArchiveRepo) Option {
	return func(l *Library) { l.archive = a }
}

// New returns a Library over blob. A nil blob yields a Library where every
// operation fails with ErrUnavailable.
func New(blob Blob, log *logger.Logger, opts ...Option) *Library {
	if log == nil {
		log = logger.Nop()
	}
	l := &Library{blob: blob, cap: DefaultCap, log: log}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Enabled reports whether a backing document is configured.
func (l *Library) Enabled() bool { return l != nil && l.blob != nil }

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}

func (l *Library) load(ctx context.Context) ([]Record, string, error) {
	if !l.Enabled() {
		return nil, "", fmt.Errorf("%w: no backend configured", ErrUnavailable)
	}
	data, version, err := l.blob.Read(ctx)
	if errors.Is(err, ErrNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", unavailable("read", err)
	}
	var records []Record
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, version, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, "", unavailable("decode", err)
	}
	return records, version, nil
}

// Append inserts rec at the front and writes the document back with the
// version it was read at. A concurrent writer makes it fail with
// ErrConflict inside ErrUnavailable; it is not retried.
func (l *Library) Append(ctx context.Context, rec Record) error {
	records, version, err := l.load(ctx)
	if err != nil {
		return err
	}
	records = append([]Record{rec}, records...)
	if len(records) > l.cap {
		records = records[:l.cap]
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return unavailable("encode", err)
	}
	if err := l.blob.Write(ctx, data, version); err != nil {
		return unavailable("write", err)
	}
	l.log.Info("lesson shared", "lesson_id", rec.ID, "subject", rec.Subject, "public", rec.Public, "total", len(records))
	return nil
}

// Outcome is where Share put a lesson.
type Outcome int

const (
	NotPersisted Outcome = iota
	Shared
	KeptLocally
)

func (o Outcome) String() string {
	switch o {
	case Shared:
		return "shared"
	case KeptLocally:
		return "kept_locally"
	}
	return "not_persisted"
}

// Share appends rec and, when that fails, saves it to the local archive.
// It never returns an error; the Outcome says what happened.
func (l *Library) Share(ctx context.Context, rec Record) Outcome {
	if l == nil {
		return NotPersisted
	}
	err := l.Append(ctx, rec)
	if err == nil {
		return Shared
	}
	l.log.Warn("share failed", "lesson_id", rec.ID, "error", err)
	if l.archive == nil {
		return NotPersisted
	}
	raw, _ := json.Marshal(rec)
	archErr := l.archive.Save(ctx, store.ArchivedLesson{
		Timestamp:  rec.CreatedAt,
		LessonID:   rec.ID,
		AuthorName: rec.AuthorName,
		Subject:    rec.Subject,
		Topic:      rec.Topic,
		Reason:     err.Error(),
		Record:     raw,
	})
	if archErr != nil {
		l.log.Error("archive failed", "lesson_id", rec.ID, "error", archErr)
		return NotPersisted
	}
	return KeptLocally
}

func public(records []Record) []Record {
	out := records[:0:0]
	for _, r := range records {
		if r.Public {
			out = append(out, r)
		}
	}
	return out
}

func head(records []Record, limit int) []Record {
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}

// ListRecent returns up to limit public records, newest first. A limit of
// zero or less returns all of them.
func (l *Library) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	records, _, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return head(public(records), limit), nil
}

// Query narrows Search. Empty fields match everything; matching is case
// insensitive except for Ages.
type Query struct {
	Subject string
	Ages    string
	Country string
}

func (q Query) match(r Record) bool {
	if q.Subject != "" && !strings.EqualFold(r.Subject, q.Subject) {
		return false
	}
	if q.Ages != "" && r.Ages != q.Ages {
		return false
	}
	if q.Country != "" && !strings.EqualFold(r.Country, q.Country) {
		return false
	}
	return true
}

// Search returns up to limit public records matching q, newest first.
func (l *Library) Search(ctx context.Context, q Query, limit int) ([]Record, error) {
	records, _, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	var out []Record
	for _, r := range public(records) {
		if q.match(r) {
			out = append(out, r)
		}
	}
	return head(out, limit), nil
}

// Get returns the public record with id, or ErrNotFound.
func (l *Library) Get(ctx context.Context, id string) (Record, error) {
	records, _, err := l.load(ctx)
	if err != nil {
		return Record{}, err
	}
	for _, r := range records {
		if r.ID == id && r.Public {
			return r, nil
		}
	}
	return Record{}, fmt.Errorf("lesson %q: %w", id, ErrNotFound)
}

// Count is one bucket of Stats.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats summarizes the public records.
type Stats struct {
	Total     int       `json:"total"`
	Countries []Count   `json:"countries"`
	Subjects  []Count   `json:"subjects"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stats counts public records per country and subject, largest first.
func (l *Library) Stats(ctx context.Context) (Stats, error) {
	records, _, err := l.load(ctx)
	if err != nil {
		return Stats{}, err
	}
	pub := public(records)
	countries := map[string]int{}
	subjects := map[string]int{}
	var latest time.Time
	for _, r := range pub {
		countries[orDefault(r.Country, lesson.NoCountry)]++
		subjects[orDefault(r.Subject, "General")]++
		if r.CreatedAt.After(latest) {
			latest = r.CreatedAt
		}
	}
	return Stats{
		Total:     len(pub),
		Countries: ranked(countries),
		Subjects:  ranked(subjects),
		UpdatedAt: latest,
	}, nil
}

func ranked(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Name: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
