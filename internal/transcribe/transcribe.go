// Package transcribe turns voice notes into text through an
// OpenAI-compatible Whisper endpoint.
package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tooley/tooley/internal/i18n"
	"github.com/tooley/tooley/internal/logger"
)

// Defaults for the Groq-hosted Whisper model.
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "whisper-large-v3"
)

// ErrNotConfigured is returned by Disabled.
var ErrNotConfigured = errors.New("voice transcription is not configured")

// ErrEmpty means the backend heard nothing.
var ErrEmpty = errors.New("empty transcript")

// Transcriber converts audio to text in the given language.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string, loc i18n.Locale) (string, error)
}

// Config selects the Whisper backend.
type Config struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// Enabled reports whether a key is present.
func (c Config) Enabled() bool { return strings.TrimSpace(c.APIKey) != "" }

// Whisper implements Transcriber with go-openai.
type Whisper struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     *logger.Logger
}

// NewWhisper creates a Whisper transcriber.
func NewWhisper(cfg Config, log *logger.Logger) (*Whisper, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	if log == nil {
		log = logger.Nop()
	}
	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Whisper{
		client:  openai.NewClientWithConfig(config),
		model:   model,
		timeout: timeout,
		log:     log,
	}, nil
}

// Transcribe sends audio to the backend with loc as the language hint.
func (w *Whisper) Transcribe(ctx context.Context, audio []byte, filename string, loc i18n.Locale) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("transcribe: %w", ErrEmpty)
	}
	if filepath.Ext(filename) == "" {
		filename = "voice.ogg"
	}
	if loc == (i18n.Locale{}) {
		loc = i18n.Default
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
		Language: loc.Code(),
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		w.log.Warn("transcription failed", "model", w.model, "bytes", len(audio), "error", err)
		return "", fmt.Errorf("transcribe: %w", describe(err))
	}

	text := strings.TrimSpace(resp.Text)
	w.log.Info("voice transcribed",
		"model", w.model, "language", loc.Code(), "bytes", len(audio),
		"chars", len(text), "latency_ms", time.Since(start).Milliseconds())
	if text == "" {
		return "", fmt.Errorf("transcribe: %w", ErrEmpty)
	}
	return text, nil
}

// StatusError carries the HTTP status of a failed request.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d: %v", e.Status, e.Err) }
func (e *StatusError) Unwrap() error { return e.Err }

func describe(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{Status: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &StatusError{Status: reqErr.HTTPStatusCode, Err: err}
	}
	return err
}

// Disabled is the Transcriber used when no key is configured.
type Disabled struct{}

func (Disabled) Transcribe(context.Context, []byte, string, i18n.Locale) (string, error) {
	return "", ErrNotConfigured
}

// New returns Whisper when cfg has a key and Disabled otherwise.
func New(cfg Config, log *logger.Logger) (Transcriber, error) {
	if !cfg.Enabled() {
		return Disabled{}, nil
	}
	return NewWhisper(cfg, log)
}
