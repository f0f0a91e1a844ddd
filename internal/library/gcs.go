package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GCSConfig locates the shared document in a bucket.
type GCSConfig struct {
	Bucket string `yaml:"bucket"`
	Object string `yaml:"object"`
	// Credentials is a service account file path or inline JSON. Empty uses
	// application default credentials.
	Credentials string `yaml:"credentials"`
	// Endpoint points the client at an emulator; auth is then disabled.
	Endpoint string `yaml:"endpoint"`
}

// GCSBlob stores the document as one object. The object generation is the
// version and writes are conditional on it.
type GCSBlob struct {
	client *storage.Client
	obj    *storage.ObjectHandle
}

func clientOptions(cfg GCSConfig) []option.ClientOption {
	var opts []option.ClientOption
	if ep := strings.TrimSpace(cfg.Endpoint); ep != "" {
		return append(opts, option.WithEndpoint(ep), option.WithoutAuthentication())
	}
	creds := strings.TrimSpace(cfg.Credentials)
	switch {
	case creds == "":
	case strings.HasPrefix(creds, "{"):
		opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
	default:
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	return append(opts, option.WithScopes(storage.ScopeReadWrite))
}

// NewGCSBlob dials the storage client.
func NewGCSBlob(ctx context.Context, cfg GCSConfig) (*GCSBlob, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("gcs library: bucket is required")
	}
	if cfg.Object == "" {
		cfg.Object = "lessons.json"
	}
	client, err := storage.NewClient(ctx, clientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("gcs library: %w", err)
	}
	return &GCSBlob{client: client, obj: client.Bucket(cfg.Bucket).Object(cfg.Object)}, nil
}

// Close releases the storage client.
func (g *GCSBlob) Close() error { return g.client.Close() }

func (g *GCSBlob) Read(ctx context.Context) ([]byte, string, error) {
	r, err := g.obj.NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("gcs read: %w", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("gcs read: %w", err)
	}
	return data, strconv.FormatInt(r.Attrs.Generation, 10), nil
}

func (g *GCSBlob) Write(ctx context.Context, data []byte, version string) error {
	cond, err := generationCondition(version)
	if err != nil {
		return err
	}
	w := g.obj.If(cond).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return mapGCSWriteError(err)
	}
	return mapGCSWriteError(w.Close())
}

// generationCondition turns a version into a write precondition. No
// version means the object must not exist yet.
func generationCondition(version string) (storage.Conditions, error) {
	if version == "" {
		return storage.Conditions{DoesNotExist: true}, nil
	}
	gen, err := strconv.ParseInt(version, 10, 64)
	if err != nil || gen <= 0 {
		return storage.Conditions{}, fmt.Errorf("%w: malformed generation %q", ErrConflict, version)
	}
	return storage.Conditions{GenerationMatch: gen}, nil
}

func mapGCSWriteError(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return fmt.Errorf("gcs write: %w", err)
}
