package store

import (
	"context"
	"errors"
	"time"
)

// QueryOpts configures log queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
}

// LLMRequestEventData captures a single backend call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored backend call.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates calls sharing a purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates calls served by one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo is the append-only log of backend calls.
type EventRepo interface {
	// AppendLLMRequest records a backend call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with id, or nil if there is none.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// ArchivedLesson is a lesson kept on disk because the shared library could
// not take it. Record holds the library record as JSON.
type ArchivedLesson struct {
	ID         int
	Sequence   int64
	Timestamp  time.Time
	LessonID   string
	AuthorName string
	Subject    string
	Topic      string
	Reason     string
	Record     []byte
}

// ArchiveRepo keeps lessons locally.
type ArchiveRepo interface {
	Save(ctx context.Context, lesson ArchivedLesson) error
	// List returns archived lessons newest first.
	List(ctx context.Context, limit int) ([]ArchivedLesson, error)
}

// SessionSnapshot is the serialized wizard session of one user.
type SessionSnapshot struct {
	SessionID string
	Data      []byte
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// SnapshotRepo persists wizard sessions so a local front-end survives
// restarts.
type SnapshotRepo interface {
	// Save inserts or replaces the snapshot for snap.SessionID.
	Save(ctx context.Context, snap SessionSnapshot) error

	// Load returns the snapshot for id, or nil if absent or expired at now.
	Load(ctx context.Context, id string, now time.Time) (*SessionSnapshot, error)

	// Prune deletes snapshots that expired before now and reports how many.
	Prune(ctx context.Context, now time.Time) (int, error)
}

var (
	// ErrBlobNotFound is returned by BlobRepo.Read when nothing is stored yet.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrBlobConflict is returned by BlobRepo.Write when the version is stale.
	ErrBlobConflict = errors.New("blob version conflict")
)
