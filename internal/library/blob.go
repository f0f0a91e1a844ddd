package library

import (
	"context"
	"strconv"
	"sync"

	"github.com/tooley/tooley/internal/store"
)

var (
	// ErrNotFound is returned by Blob.Read when nothing is stored yet, and
	// by Library.Get for an unknown id.
	ErrNotFound = store.ErrBlobNotFound

	// ErrConflict is returned by Blob.Write when the version is stale.
	ErrConflict = store.ErrBlobConflict
)

// Blob is a single versioned document. An empty version on Write means
// create-only.
type Blob interface {
	Read(ctx context.Context) (data []byte, version string, err error)
	Write(ctx context.Context, data []byte, version string) error
}

var _ Blob = (*store.BlobRepo)(nil)

// MemoryBlob keeps the document in process. Setting Err makes every call
// fail with it.
type MemoryBlob struct {
	mu      sync.Mutex
	data    []byte
	version int
	Err     error
}

func (m *MemoryBlob) Read(ctx context.Context) ([]byte, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, "", m.Err
	}
	if m.version == 0 {
		return nil, "", ErrNotFound
	}
	return append([]byte(nil), m.data...), strconv.Itoa(m.version), nil
}

func (m *MemoryBlob) Write(ctx context.Context, data []byte, version string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	current := ""
	if m.version > 0 {
		current = strconv.Itoa(m.version)
	}
	if version != current {
		return ErrConflict
	}
	m.data = append([]byte(nil), data...)
	m.version++
	return nil
}
