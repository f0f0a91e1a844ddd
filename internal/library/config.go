package library

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tooley/tooley/internal/store"
)

// Config selects the backend for the shared document.
type Config struct {
	// Backend is one of github, gcs, sqlite, memory or none.
	Backend string       `yaml:"backend"`
	GitHub  GitHubConfig `yaml:"github"`
	GCS     GCSConfig    `yaml:"gcs"`
	// Key names the row used by the sqlite backend.
	Key string `yaml:"key"`
	Cap int    `yaml:"cap"`
}

// Validate checks that the chosen backend has what it needs.
func (c Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case "", "none", "memory", "sqlite":
		return nil
	case "github":
		if c.GitHub.Token == "" || c.GitHub.Repo == "" {
			return fmt.Errorf("library: github backend needs token and repo")
		}
		return nil
	case "gcs":
		if c.GCS.Bucket == "" {
			return fmt.Errorf("library: gcs backend needs a bucket")
		}
		return nil
	}
	return fmt.Errorf("library: unknown backend %q", c.Backend)
}

// OpenBlob builds the configured Blob. The closer is nil when the backend
// holds no resources. "none" returns a nil Blob.
func OpenBlob(ctx context.Context, cfg Config, db *store.Store) (Blob, io.Closer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	switch strings.ToLower(cfg.Backend) {
	case "github":
		b, err := NewGitHubBlob(cfg.GitHub)
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil
	case "gcs":
		b, err := NewGCSBlob(ctx, cfg.GCS)
		if err != nil {
			return nil, nil, err
		}
		return b, b, nil
	case "sqlite":
		if db == nil {
			return nil, nil, fmt.Errorf("library: sqlite backend needs a database")
		}
		key := cfg.Key
		if key == "" {
			key = "lessons.json"
		}
		return db.BlobRepo(key), nil, nil
	case "memory":
		return &MemoryBlob{}, nil, nil
	}
	return nil, nil, nil
}
